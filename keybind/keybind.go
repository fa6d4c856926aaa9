package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Keybind is a named set of key strings such as "ctrl+s", "shift+up" or "G".
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	k := &Keybind{}
	for _, option := range options {
		option(k)
	}
	return *k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = normalizeKeys(keys...)
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

func (k *Keybind) SetKeys(keys ...string) {
	k.keys = normalizeKeys(keys...)
}

// Enabled reports whether the keybind takes part in matching and help output.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

type Help struct {
	Key  string
	Desc string
}

func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}

	key := eventKeyString(event)
	for _, keybind := range keybinds {
		if keybind.disabled {
			continue
		}
		if slices.Contains(keybind.keys, key) {
			return true
		}
	}
	return false
}

func normalizeKeys(keys ...string) []string {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		key = normalizeKey(key)
		if key == "" {
			continue
		}
		normalized = append(normalized, key)
	}
	return normalized
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || key == "+" {
		return key
	}

	parts := strings.Split(key, "+")
	mods := make([]string, 0, len(parts))
	primary := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods = append(mods, "ctrl")
		case "alt":
			mods = append(mods, "alt")
		case "shift":
			mods = append(mods, "shift")
		case "meta":
			mods = append(mods, "meta")
		default:
			primary = normalizePrimaryKey(part)
		}
	}

	if primary == "" {
		return ""
	}

	if primary == "backtab" {
		mods = append(mods, "shift")
		primary = "tab"
	}

	if len(mods) > 0 && len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}

	if len(mods) == 0 {
		return primary
	}

	return strings.Join(append(canonicalMods(mods), primary), "+")
}

// modOrder is the order in which modifiers are spelled in normalized keys.
var modOrder = []string{"ctrl", "alt", "shift", "meta"}

func canonicalMods(mods []string) []string {
	out := make([]string, 0, len(mods))
	for _, mod := range modOrder {
		if slices.Contains(mods, mod) {
			out = append(out, mod)
		}
	}
	return out
}

func normalizePrimaryKey(key string) string {
	if strings.HasPrefix(key, "Rune[") && strings.HasSuffix(key, "]") && len(key) >= 7 {
		return key[5 : len(key)-1]
	}

	switch strings.ToLower(key) {
	case "esc", "escape":
		return "esc"
	case "return":
		return "enter"
	case "pageup":
		return "pgup"
	case "pagedown":
		return "pgdn"
	case "ctrl-c":
		return "ctrl+c"
	}

	if strings.HasPrefix(strings.ToLower(key), "ctrl-") && len(key) > len("ctrl-") {
		return "ctrl+" + strings.ToLower(key[len("ctrl-"):])
	}

	if len([]rune(key)) == 1 {
		return key
	}

	return strings.ToLower(key)
}

func eventKeyString(event *tcell.EventKey) string {
	if event == nil {
		return ""
	}

	// Enter, Tab and Backspace share codes with the control range, so named
	// keys are resolved first.
	key := event.Key()
	primary := keyName(key)
	if primary == "" && key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	mods := event.Modifiers()
	if primary == "" && key == tcell.KeyRune {
		primary = string(event.Rune())
		// The rune already carries the case.
		mods &^= tcell.ModShift
	}
	if primary == "" {
		return normalizeKey(event.Name())
	}

	names := make([]string, 0, 4)
	if mods&tcell.ModCtrl != 0 {
		names = append(names, "ctrl")
	}
	if mods&tcell.ModAlt != 0 {
		names = append(names, "alt")
	}
	if mods&tcell.ModShift != 0 {
		names = append(names, "shift")
	}
	if mods&tcell.ModMeta != 0 {
		names = append(names, "meta")
	}
	if len(names) == 0 {
		return primary
	}
	if strings.HasPrefix(primary, "shift+") {
		names = append(names, "shift")
		primary = strings.TrimPrefix(primary, "shift+")
	}
	return strings.Join(append(canonicalMods(names), primary), "+")
}

func keyName(key tcell.Key) string {
	switch key {
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyDelete:
		return "delete"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyInsert:
		return "insert"
	default:
		return ""
	}
}
