package tview

import "github.com/gdamore/tcell/v2"

// clippedScreen forwards drawing to the wrapped screen but drops every cell
// outside its rectangle. Row painters draw through it so a partially scrolled
// row cannot bleed into its neighbours or the scrollbar.
type clippedScreen struct {
	tcell.Screen
	clip Rect
}

func newClippedScreen(screen tcell.Screen, clip Rect) *clippedScreen {
	if inner, ok := screen.(*clippedScreen); ok {
		clip = intersect(clip, inner.clip)
		screen = inner.Screen
	}
	return &clippedScreen{Screen: screen, clip: clip}
}

func (s *clippedScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if !s.clip.Contains(x, y) {
		return
	}
	s.Screen.SetContent(x, y, primary, combining, style)
}

func (s *clippedScreen) ShowCursor(x int, y int) {
	if !s.clip.Contains(x, y) {
		s.Screen.HideCursor()
		return
	}
	s.Screen.ShowCursor(x, y)
}

func intersect(a, b Rect) Rect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.Width, b.X+b.Width), min(a.Y+a.Height, b.Y+b.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
