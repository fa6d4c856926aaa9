package tview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(screen tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := screen.GetContent(x, y)
	return r, style
}

// lineText returns the runes of screen row y in columns [x, x+width).
func lineText(screen tcell.Screen, x, y, width int) string {
	var b strings.Builder
	for col := x; col < x+width; col++ {
		r, _ := cellAt(screen, col, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}

	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(5, 4))
	assert.False(t, r.Contains(6, 4))
	assert.False(t, r.Contains(2, 5))
	assert.False(t, Rect{}.Contains(0, 0))
}

func TestIntersect(t *testing.T) {
	got := intersect(Rect{X: 0, Y: 0, Width: 10, Height: 4}, Rect{X: 5, Y: 2, Width: 10, Height: 10})
	assert.Equal(t, Rect{X: 5, Y: 2, Width: 5, Height: 2}, got)

	empty := intersect(Rect{X: 0, Y: 0, Width: 2, Height: 2}, Rect{X: 4, Y: 4, Width: 2, Height: 2})
	assert.Zero(t, empty.Width)
	assert.Zero(t, empty.Height)
}

func TestClippedScreenDropsOutsideCells(t *testing.T) {
	screen := newTestScreen(t, 6, 3)
	clip := newClippedScreen(screen, Rect{X: 1, Y: 1, Width: 3, Height: 1})

	fill(clip, Rect{X: 0, Y: 0, Width: 6, Height: 3}, '#', tcell.StyleDefault)

	assert.Equal(t, "      ", lineText(screen, 0, 0, 6))
	assert.Equal(t, " ###  ", lineText(screen, 0, 1, 6))
	assert.Equal(t, "      ", lineText(screen, 0, 2, 6))

	nested := newClippedScreen(clip, Rect{X: 3, Y: 0, Width: 3, Height: 3})
	assert.Equal(t, Rect{X: 3, Y: 1, Width: 1, Height: 1}, nested.clip)
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("日本"))
	assert.Zero(t, StringWidth(""))
}
