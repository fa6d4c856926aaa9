package tview

import "github.com/gdamore/tcell/v2"

// BorderSet defines the runes used to frame a Box.
type BorderSet struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// BorderSetPlain returns light box-drawing borders.
func BorderSetPlain() BorderSet {
	return BorderSet{
		Horizontal:  tcell.RuneHLine,
		Vertical:    tcell.RuneVLine,
		TopLeft:     tcell.RuneULCorner,
		TopRight:    tcell.RuneURCorner,
		BottomLeft:  tcell.RuneLLCorner,
		BottomRight: tcell.RuneLRCorner,
	}
}

// BorderSetRound returns light borders with rounded corners.
func BorderSetRound() BorderSet {
	b := BorderSetPlain()
	b.TopLeft, b.TopRight = '╭', '╮'
	b.BottomLeft, b.BottomRight = '╰', '╯'
	return b
}

// BorderSetDouble returns double-line borders.
func BorderSetDouble() BorderSet {
	return BorderSet{
		Horizontal:  '═',
		Vertical:    '║',
		TopLeft:     '╔',
		TopRight:    '╗',
		BottomLeft:  '╚',
		BottomRight: '╝',
	}
}

type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

func (b Borders) Has(flag Borders) bool {
	return b&flag != 0
}
