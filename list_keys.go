package tview

import "github.com/xqrs/tview/keybind"

// ListKeyMap holds the keys a List reacts to. Which of Up/Down and
// Left/Right move by one row and which move by a page depends on
// List.SetHasPointer.
type ListKeyMap struct {
	Activate keybind.Keybind
	Up       keybind.Keybind
	Down     keybind.Keybind
	Left     keybind.Keybind
	Right    keybind.Keybind
	Home     keybind.Keybind
	End      keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind
}

// DefaultListKeyMap returns the arrow, vi and paging keys.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Activate: keybind.NewKeybind(keybind.WithKeys("enter"), keybind.WithHelp("enter", "select")),
		Up:       keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down:     keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		Left:     keybind.NewKeybind(keybind.WithKeys("left")),
		Right:    keybind.NewKeybind(keybind.WithKeys("right")),
		Home:     keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g", "first")),
		End:      keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G", "last")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup", "shift+up"), keybind.WithHelp("pgup", "page up")),
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn", "shift+down"), keybind.WithHelp("pgdn", "page down")),
	}
}

// ShortHelp implements help.KeyMap.
func (k ListKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown, k.Activate}
}
