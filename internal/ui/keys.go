package ui

import (
	"github.com/gdamore/tcell/v2"

	"pomo/internal/input"
)

// DecodeKey turns a tcell key event into a logical key. Keys the timer has
// no use for decode to input.KeyNone. Ctrl+C behaves like 'q'.
func DecodeKey(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.Rune(ev.Rune())
	case tcell.KeyEscape:
		return input.Key{Kind: input.KeyEsc}
	case tcell.KeyTab:
		return input.Key{Kind: input.KeyTab}
	case tcell.KeyBacktab:
		return input.Key{Kind: input.KeyBackTab}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Key{Kind: input.KeyBackspace}
	case tcell.KeyCtrlC:
		return input.Rune('q')
	}
	return input.Key{}
}
