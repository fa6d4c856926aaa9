package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"Ctrl+S":      "ctrl+s",
		"control+a":   "ctrl+a",
		"Alt+Shift+X": "alt+shift+x",
		"shift+alt+x": "alt+shift+x",
		"PageUp":      "pgup",
		"pagedown":    "pgdn",
		"Return":      "enter",
		"escape":      "esc",
		"Rune[x]":     "x",
		"G":           "G",
		"backtab":     "shift+tab",
		"Ctrl-W":      "ctrl+w",
		"+":           "+",
		"  ":          "",
		"ctrl+":       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeKey(in), "normalizeKey(%q)", in)
	}
}

func TestEventKeyString(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		want  string
	}{
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), "ctrl+s"},
		{"lower rune", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), "g"},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModShift), "G"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), "shift+up"},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), "shift+tab"},
		{"function", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), "f1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eventKeyString(tt.event))
		})
	}
}

func TestMatches(t *testing.T) {
	down := NewKeybind(WithKeys("down", "j"), WithHelp("↓/j", "down"))
	last := NewKeybind(WithKeys("end", "G"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), down))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), down))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'J', tcell.ModNone), down))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone), down, last))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), last))
	assert.False(t, Matches(nil, down))
}

func TestDisabledKeybind(t *testing.T) {
	k := NewKeybind(WithKeys("x"), WithHelp("x", "delete"))
	assert.True(t, k.Enabled())

	k.SetEnabled(false)
	assert.False(t, k.Enabled())
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), k))

	k.SetEnabled(true)
	k.SetKeys()
	assert.False(t, k.Enabled(), "no keys")

	k.SetKeys("Delete", "")
	assert.Equal(t, []string{"delete"}, k.Keys())
	assert.Equal(t, Help{Key: "x", Desc: "delete"}, k.Help())
}
