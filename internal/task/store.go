package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for operations on a point that does not exist.
var ErrNotFound = errors.New("task point not found")

const schema = `
CREATE TABLE IF NOT EXISTS points (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    seq          INTEGER NOT NULL,
    name         TEXT    NOT NULL,
    kind         INTEGER NOT NULL,
    zone_kind    INTEGER NOT NULL,
    radius       REAL    NOT NULL DEFAULT 0,
    inner_radius REAL    NOT NULL DEFAULT 0,
    start_radial REAL    NOT NULL DEFAULT 0,
    end_radial   REAL    NOT NULL DEFAULT 0,
    length       REAL    NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_points_seq ON points(seq);
`

// Store keeps task points in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}
	// Every connection to ":memory:" is a separate database, and SQLite
	// serializes writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating task store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all points in task order.
func (s *Store) List(ctx context.Context) ([]Point, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, name, kind, zone_kind, radius, inner_radius, start_radial, end_radial, length
		FROM points ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("listing task points: %w", err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.ID, &p.Seq, &p.Name, &p.Kind, &p.Zone.Kind,
			&p.Zone.Radius, &p.Zone.InnerRadius, &p.Zone.StartRadial, &p.Zone.EndRadial, &p.Zone.Length); err != nil {
			return nil, fmt.Errorf("scanning task point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing task points: %w", err)
	}
	return points, nil
}

// Append adds p after the last point and returns it with ID and Seq set.
func (s *Store) Append(ctx context.Context, p Point) (Point, error) {
	var next int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), -1) + 1 FROM points`).Scan(&next); err != nil {
		return p, fmt.Errorf("appending task point: %w", err)
	}
	p.Seq = next

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO points (seq, name, kind, zone_kind, radius, inner_radius, start_radial, end_radial, length)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Seq, p.Name, p.Kind, p.Zone.Kind, p.Zone.Radius, p.Zone.InnerRadius, p.Zone.StartRadial, p.Zone.EndRadial, p.Zone.Length)
	if err != nil {
		return p, fmt.Errorf("appending task point: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return p, fmt.Errorf("appending task point: %w", err)
	}
	return p, nil
}

// Delete removes the point with the given id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM points WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task point %d: %w", id, err)
	}
	return expectOne(res, id)
}

// UpdateZone replaces the zone of the point with the given id.
func (s *Store) UpdateZone(ctx context.Context, id int64, z Zone) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE points
		SET zone_kind = ?, radius = ?, inner_radius = ?, start_radial = ?, end_radial = ?, length = ?
		WHERE id = ?`,
		z.Kind, z.Radius, z.InnerRadius, z.StartRadial, z.EndRadial, z.Length, id)
	if err != nil {
		return fmt.Errorf("updating zone of task point %d: %w", id, err)
	}
	return expectOne(res, id)
}

// Seed replaces the task with n generated points: a start line, n-2 turn
// points and a finish cylinder.
func (s *Store) Seed(ctx context.Context, n int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seeding task store: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points`); err != nil {
		return fmt.Errorf("seeding task store: %w", err)
	}
	for i, p := range SeedPoints(n) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO points (seq, name, kind, zone_kind, radius, inner_radius, start_radial, end_radial, length)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, p.Name, p.Kind, p.Zone.Kind, p.Zone.Radius, p.Zone.InnerRadius, p.Zone.StartRadial, p.Zone.EndRadial, p.Zone.Length); err != nil {
			return fmt.Errorf("seeding task point %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seeding task store: %w", err)
	}
	return nil
}

func expectOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task point %d: %w", id, ErrNotFound)
	}
	return nil
}
