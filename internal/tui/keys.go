package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings shared by every module.
type KeyMap struct {
	// Navigation
	Up   Key
	Down Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Save   Key
	Add    Key
	Clear  Key
	Reload Key

	// Function keys for module navigation
	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F5  Key
	F10 Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: Key{
			Keys:    []string{"up", "k"},
			Help:    "up",
			Enabled: true,
		},
		Down: Key{
			Keys:    []string{"down", "j"},
			Help:    "down",
			Enabled: true,
		},

		Select: Key{
			Keys:    []string{"enter"},
			Help:    "select",
			Enabled: true,
		},
		Back: Key{
			Keys:    []string{"esc"},
			Help:    "back",
			Enabled: true,
		},
		Quit: Key{
			Keys:    []string{"q", "ctrl+c"},
			Help:    "quit",
			Enabled: true,
		},
		Save: Key{
			Keys:    []string{"ctrl+s"},
			Help:    "save",
			Enabled: true,
		},
		Add: Key{
			Keys:    []string{"a"},
			Help:    "add",
			Enabled: true,
		},
		Clear: Key{
			Keys:    []string{"D"},
			Help:    "clear",
			Enabled: true,
		},
		Reload: Key{
			Keys:    []string{"r"},
			Help:    "reload",
			Enabled: true,
		},

		F1: Key{
			Keys:    []string{"f1", "?"},
			Help:    "Help",
			Enabled: true,
		},
		F2: Key{
			Keys:    []string{"f2"},
			Help:    "Inventory",
			Enabled: true,
		},
		F3: Key{
			Keys:    []string{"f3"},
			Help:    "Shopping",
			Enabled: true,
		},
		F4: Key{
			Keys:    []string{"f4"},
			Help:    "Meal plan",
			Enabled: true,
		},
		F5: Key{
			Keys:    []string{"f5"},
			Help:    "Suggestions",
			Enabled: true,
		},
		F10: Key{
			Keys:    []string{"f10"},
			Help:    "Quit",
			Enabled: true,
		},
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message is a module key.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3, km.F4, km.F5, km.F10)
}

// GetFunctionKeyModule returns the module for a function key, or "".
func (km KeyMap) GetFunctionKeyModule(msg tea.KeyMsg) Module {
	switch {
	case km.F1.Matches(msg):
		return ModuleHelp
	case km.F2.Matches(msg):
		return ModuleInventory
	case km.F3.Matches(msg):
		return ModuleShopping
	case km.F4.Matches(msg):
		return ModuleMealPlan
	case km.F5.Matches(msg):
		return ModuleSuggest
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[F1]Help [F2]Inventory [F3]Shopping [F4]Meal plan [F5]Suggestions [F10]Quit"
}
