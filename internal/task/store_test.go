package task

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	points, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, points)

	a, err := store.Append(ctx, Point{Name: "Lasham", Kind: PointStart, Zone: DefaultZone(ZoneLine)})
	require.NoError(t, err)
	b, err := store.Append(ctx, Point{Name: "Newbury", Kind: PointTurn, Zone: DefaultZone(ZoneSector)})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 0, a.Seq)
	assert.Equal(t, 1, b.Seq)

	points, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Point{a, b}, points)
}

func TestStoreUpdateZone(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p, err := store.Append(ctx, Point{Name: "Alton", Kind: PointTurn, Zone: DefaultZone(ZoneCylinder)})
	require.NoError(t, err)

	zone := DefaultZone(ZoneAnnularSector)
	require.NoError(t, store.UpdateZone(ctx, p.ID, zone))

	points, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, zone, points[0].Zone)

	err = store.UpdateZone(ctx, p.ID+100, zone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	a, err := store.Append(ctx, Point{Name: "Romsey"})
	require.NoError(t, err)
	b, err := store.Append(ctx, Point{Name: "Stockbridge"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, a.ID))
	points, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Point{b}, points)

	assert.ErrorIs(t, store.Delete(ctx, a.ID), ErrNotFound)

	c, err := store.Append(ctx, Point{Name: "Winchester"})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Seq, "new points go after the last one")
}

func TestStoreSeedReplacesTask(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	_, err := store.Append(ctx, Point{Name: "old"})
	require.NoError(t, err)

	require.NoError(t, store.Seed(ctx, 6))
	points, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, points, 6)
	assert.Equal(t, "Lasham", points[0].Name)
	assert.Equal(t, PointStart, points[0].Kind)
	assert.Equal(t, PointFinish, points[5].Kind)
	for i, p := range points {
		assert.Equal(t, i, p.Seq)
	}
}

func TestStorePersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "task.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = store.Append(ctx, Point{Name: "Basingstoke", Zone: DefaultZone(ZoneCylinder)})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	points, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Basingstoke", points[0].Name)
}
