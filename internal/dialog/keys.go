package dialog

import (
	"github.com/xqrs/tview"
	"github.com/xqrs/tview/keybind"
)

// KeyMap holds the dialog keys on top of the list navigation.
type KeyMap struct {
	List   tview.ListKeyMap
	Insert keybind.Keybind
	Delete keybind.Keybind
	Grow   keybind.Keybind
	Shrink keybind.Keybind
	Sync   keybind.Keybind
	Quit   keybind.Keybind
}

// DefaultKeyMap returns the default dialog keys around list.
func DefaultKeyMap(list tview.ListKeyMap) KeyMap {
	list.Activate.SetHelp("enter", "zone type")
	return KeyMap{
		List:   list,
		Insert: keybind.NewKeybind(keybind.WithKeys("insert", "a"), keybind.WithHelp("a", "add")),
		Delete: keybind.NewKeybind(keybind.WithKeys("delete", "x"), keybind.WithHelp("x", "remove")),
		Grow:   keybind.NewKeybind(keybind.WithKeys("+", "="), keybind.WithHelp("+/-", "size")),
		Shrink: keybind.NewKeybind(keybind.WithKeys("-")),
		Sync:   keybind.NewKeybind(keybind.WithKeys("ctrl+l")),
		Quit:   keybind.NewKeybind(keybind.WithKeys("q", "esc"), keybind.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []keybind.Keybind {
	return append(k.List.ShortHelp(), k.Insert, k.Delete, k.Grow, k.Quit)
}
