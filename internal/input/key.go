package input

import "pomo/internal/timer"

// KeyKind classifies a decoded key press.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyRune
	KeyEsc
	KeyTab
	KeyBackTab
	KeyBackspace
)

// Key is a single logical key press. Rune is only set for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

func Rune(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

// CommandFor maps a key pressed outside of edit mode to a timer command.
func CommandFor(k Key) timer.Command {
	if k.Kind != KeyRune {
		return timer.CommandNone
	}
	switch k.Rune {
	case 'q':
		return timer.CommandQuit
	case ' ':
		return timer.CommandToggle
	case 's':
		return timer.CommandStop
	}
	return timer.CommandNone
}
