package tview

import "github.com/gdamore/tcell/v2"

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor    tcell.Color // Main background color for primitives.
	ContrastBackgroundColor     tcell.Color // Background color for contrasting elements.
	MoreContrastBackgroundColor tcell.Color // Background color for even more contrasting elements.
	BorderColor                 tcell.Color // Box borders.
	TitleColor                  tcell.Color // Box titles.
	GraphicsColor               tcell.Color // Graphics.
	PrimaryTextColor            tcell.Color // Primary text.
	SecondaryTextColor          tcell.Color // Secondary text (e.g. labels).
	TertiaryTextColor           tcell.Color // Tertiary text (e.g. subtitles, notes).
	InverseTextColor            tcell.Color // Text on primary-colored backgrounds.
	ContrastSecondaryTextColor  tcell.Color // Secondary text on ContrastBackgroundColor-colored backgrounds.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors: black, white, yellow, green, cyan, and
// blue.
var Styles = Theme{
	PrimitiveBackgroundColor:    tcell.ColorBlack,
	ContrastBackgroundColor:     tcell.ColorBlue,
	MoreContrastBackgroundColor: tcell.ColorGreen,
	BorderColor:                 tcell.ColorWhite,
	TitleColor:                  tcell.ColorWhite,
	GraphicsColor:               tcell.ColorWhite,
	PrimaryTextColor:            tcell.ColorWhite,
	SecondaryTextColor:          tcell.ColorYellow,
	TertiaryTextColor:           tcell.ColorGreen,
	InverseTextColor:            tcell.ColorBlue,
	ContrastSecondaryTextColor:  tcell.ColorNavy,
}

// ListStyles holds the row backgrounds of a List. Each row is in exactly one
// of the background states; the focus marker is drawn on top.
type ListStyles struct {
	Default           tcell.Style
	SelectedFocused   tcell.Style
	SelectedUnfocused tcell.Style
	Pressed           tcell.Style

	FocusMarker      tcell.Style
	FocusMarkerLeft  rune
	FocusMarkerRight rune
}

// DefaultListStyles derives list styles from the global Styles theme.
func DefaultListStyles() ListStyles {
	base := tcell.StyleDefault.
		Foreground(Styles.PrimaryTextColor).
		Background(Styles.PrimitiveBackgroundColor)
	return ListStyles{
		Default:           base,
		SelectedFocused:   base.Background(Styles.ContrastBackgroundColor),
		SelectedUnfocused: base.Background(tcell.ColorGray),
		Pressed:           base.Background(Styles.MoreContrastBackgroundColor).Foreground(Styles.InverseTextColor),
		FocusMarker:       base.Foreground(Styles.SecondaryTextColor).Background(Styles.ContrastBackgroundColor),
		FocusMarkerLeft:   '▌',
		FocusMarkerRight:  '▐',
	}
}

// For returns the background style for a row in the given state.
func (s ListStyles) For(state RowState) tcell.Style {
	switch {
	case state.Selected && state.Pressed:
		return s.Pressed
	case state.Selected && state.Focused:
		return s.SelectedFocused
	case state.Selected:
		return s.SelectedUnfocused
	default:
		return s.Default
	}
}
