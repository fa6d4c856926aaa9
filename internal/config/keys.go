package config

import (
	"strings"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/keybind"
)

var keyActions = map[string]func(*tview.ListKeyMap) *keybind.Keybind{
	"activate":  func(k *tview.ListKeyMap) *keybind.Keybind { return &k.Activate },
	"up":        func(k *tview.ListKeyMap) *keybind.Keybind { return &k.Up },
	"down":      func(k *tview.ListKeyMap) *keybind.Keybind { return &k.Down },
	"left":      func(k *tview.ListKeyMap) *keybind.Keybind { return &k.Left },
	"right":     func(k *tview.ListKeyMap) *keybind.Keybind { return &k.Right },
	"home":      func(k *tview.ListKeyMap) *keybind.Keybind { return &k.Home },
	"end":       func(k *tview.ListKeyMap) *keybind.Keybind { return &k.End },
	"page_up":   func(k *tview.ListKeyMap) *keybind.Keybind { return &k.PageUp },
	"page_down": func(k *tview.ListKeyMap) *keybind.Keybind { return &k.PageDown },
}

// KeyMap returns the default list keys with the configured overrides. An
// empty key list disables the action.
func (l ListConfig) KeyMap() tview.ListKeyMap {
	keys := tview.DefaultListKeyMap()
	for action, bound := range l.Keys {
		field, ok := keyActions[action]
		if !ok {
			continue
		}
		kb := field(&keys)
		kb.SetKeys(bound...)
		kb.SetEnabled(len(bound) > 0)
		if help := kb.Help(); help.Desc != "" {
			kb.SetHelp(strings.Join(bound, "/"), help.Desc)
		}
	}
	return keys
}
