package session

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action is what a key press asks the session to do.
type Action int

const (
	ActionNone Action = iota
	ActionClear
	ActionSave
	ActionCopyImage
	ActionCopyLabel
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionClear:
		return "clear"
	case ActionSave:
		return "save"
	case ActionCopyImage:
		return "copy"
	case ActionCopyLabel:
		return "copy-label"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// KeyShortcut describes a keyboard combination that triggers an action.
// Either Rune or Code is set.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

type keymap map[KeyShortcut]Action

// defaultKeymap binds each shortcut by rune and by key code, since drivers
// differ in which of the two they fill in while Control is held.
func defaultKeymap() keymap {
	m := keymap{}
	bind := func(a Action, r rune, code key.Code, mods key.Modifiers) {
		if r != 0 {
			m[KeyShortcut{Rune: r, Modifiers: mods}] = a
		}
		if code != key.CodeUnknown {
			m[KeyShortcut{Code: code, Modifiers: mods}] = a
		}
	}
	bind(ActionClear, 'c', key.CodeC, 0)
	bind(ActionClear, 'c', key.CodeC, key.ModShift)
	bind(ActionSave, 's', key.CodeS, key.ModControl)
	bind(ActionCopyImage, 'c', key.CodeC, key.ModControl)
	bind(ActionCopyLabel, 'c', key.CodeC, key.ModControl|key.ModShift)
	bind(ActionCopyLabel, 'y', key.CodeY, 0)
	bind(ActionQuit, 'q', key.CodeQ, 0)
	bind(ActionQuit, 0, key.CodeEscape, 0)
	return m
}

func (m keymap) lookup(e key.Event) Action {
	if r := unicode.ToLower(e.Rune); r > 0 {
		if a, ok := m[KeyShortcut{Rune: r, Modifiers: e.Modifiers}]; ok {
			return a
		}
	}
	if a, ok := m[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]; ok {
		return a
	}
	return ActionNone
}
