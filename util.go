package tview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Rect is a screen rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// Print prints text onto the screen into the given box at (x,y,maxWidth,1),
// not exceeding that box.
//
// Returns the number of actual bytes of the text printed and the actual width
// used for the printed runes.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	return PrintWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(color))
}

// PrintWithStyle works like [Print] but it takes a full style. Text that does
// not fit is cut at a grapheme boundary; right and center alignment keep the
// tail and the middle of the text respectively.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	totalWidth, totalHeight := screen.Size()
	if maxWidth <= 0 || len(text) == 0 || y < 0 || y >= totalHeight {
		return 0, 0
	}

	type cluster struct {
		text  string
		width int
	}
	var clusters []cluster
	textWidth := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		c := cluster{text: gr.Str(), width: uniseg.StringWidth(gr.Str())}
		clusters = append(clusters, c)
		textWidth += c.width
	}

	// Reduce all alignments to AlignmentLeft.
	switch alignment {
	case AlignmentRight:
		for len(clusters) > 0 && textWidth > maxWidth {
			textWidth -= clusters[0].width
			clusters = clusters[1:]
		}
		x += maxWidth - textWidth
	case AlignmentCenter:
		skip := (textWidth - maxWidth) / 2
		for len(clusters) > 0 && skip > 0 {
			skip -= clusters[0].width
			textWidth -= clusters[0].width
			clusters = clusters[1:]
		}
		if textWidth < maxWidth {
			x += (maxWidth - textWidth) / 2
		}
	}

	right := min(x+maxWidth, totalWidth)
	printedBytes, printedWidth := 0, 0
	for _, c := range clusters {
		if c.width == 0 {
			printedBytes += len(c.text)
			continue
		}
		if x+c.width > right {
			break
		}
		runes := []rune(c.text)
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += c.width
		printedBytes += len(c.text)
		printedWidth += c.width
	}
	return printedBytes, printedWidth
}

// PrintSimple prints white text to the screen at the given position.
func PrintSimple(screen tcell.Screen, text string, x, y int) {
	Print(screen, text, x, y, math.MaxInt32, AlignmentLeft, Styles.PrimaryTextColor)
}

// fill paints every cell of r with ch in style.
func fill(screen tcell.Screen, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			screen.SetContent(x, y, ch, nil, style)
		}
	}
}
