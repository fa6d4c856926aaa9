package help

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/xqrs/tview"
	"github.com/xqrs/tview/keybind"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
}

// Help renders the enabled keybinds of a KeyMap on a single line.
type Help struct {
	*tview.Box
	Styles Styles

	keyMap    KeyMap
	separator string
	ellipsis  string
}

func New() *Help {
	return &Help{
		Box:       tview.NewBox(),
		Styles:    DefaultStyles(),
		separator: " • ",
		ellipsis:  "…",
	}
}

// SetKeyMap sets the key map used by this help primitive.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetSeparator sets the separator placed between keybinds.
func (h *Help) SetSeparator(separator string) *Help {
	if h.separator != separator {
		h.separator = separator
		h.MarkDirty()
	}
	return h
}

// SetEllipsis sets the ellipsis marker used when content is truncated.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	if h.ellipsis != ellipsis {
		h.ellipsis = ellipsis
		h.MarkDirty()
	}
	return h
}

// SetStyles sets help styles.
func (h *Help) SetStyles(styles Styles) *Help {
	h.Styles = styles
	h.MarkDirty()
	return h
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	if height <= 0 {
		return
	}
	h.drawSegments(screen, x, y, width, h.segments(h.keyMap.ShortHelp(), width))
}

// Line renders the help line as plain text.
func (h *Help) Line(maxWidth int) string {
	if h.keyMap == nil {
		return ""
	}
	var b strings.Builder
	for _, s := range h.segments(h.keyMap.ShortHelp(), maxWidth) {
		b.WriteString(s.text)
	}
	return b.String()
}

type segment struct {
	text  string
	style tcell.Style
}

func (h *Help) segments(bindings []keybind.Keybind, maxWidth int) []segment {
	items := make([][]segment, 0, len(bindings))
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		item := itemSegments(kb, h.Styles.KeyStyle, h.Styles.DescStyle)
		if len(item) == 0 {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil
	}

	sepText := h.separator
	if sepText == "" {
		sepText = " "
	}
	sep := segment{text: sepText, style: h.Styles.SeparatorStyle}

	out := cloneSegments(items[0])
	if maxWidth > 0 && segmentsWidth(out) > maxWidth {
		return nil
	}
	for i := 1; i < len(items); i++ {
		candidate := append(cloneSegments(out), sep)
		candidate = append(candidate, items[i]...)
		if maxWidth > 0 && segmentsWidth(candidate) > maxWidth {
			return append(out, h.truncationTail(out, maxWidth)...)
		}
		out = candidate
	}
	return out
}

func (h *Help) truncationTail(current []segment, maxWidth int) []segment {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	// We only add an ellipsis when it fully fits because clipping looks broken in narrow widths.
	tail := []segment{
		{text: " ", style: h.Styles.EllipsisStyle},
		{text: h.ellipsis, style: h.Styles.EllipsisStyle},
	}
	if segmentsWidth(current)+segmentsWidth(tail) <= maxWidth {
		return tail
	}
	return nil
}

func (h *Help) drawSegments(screen tcell.Screen, x, y, width int, segments []segment) {
	if width <= 0 || len(segments) == 0 {
		return
	}

	cursor := x
	remaining := width
	for _, s := range segments {
		if s.text == "" || remaining <= 0 {
			continue
		}
		_, printedWidth := tview.PrintWithStyle(screen, s.text, cursor, y, remaining, tview.AlignmentLeft, s.style)
		cursor += printedWidth
		remaining -= printedWidth
	}
}

func itemSegments(kb keybind.Keybind, keyStyle, descStyle tcell.Style) []segment {
	help := kb.Help()
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return []segment{{text: help.Desc, style: descStyle}}
	case help.Desc == "":
		return []segment{{text: help.Key, style: keyStyle}}
	default:
		return []segment{{text: help.Key, style: keyStyle}, {text: " ", style: descStyle}, {text: help.Desc, style: descStyle}}
	}
}

func segmentsWidth(segments []segment) int {
	width := 0
	for _, segment := range segments {
		width += tview.StringWidth(segment.text)
	}
	return width
}

func cloneSegments(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	return out
}
