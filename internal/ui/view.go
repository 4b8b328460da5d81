package ui

import (
	"pomo/internal/event"
	"pomo/internal/input"
	"pomo/internal/timer"
)

// View is everything the renderer needs for one frame.
type View struct {
	Title    string
	Progress string
	Percent  uint16
	Phase    event.Phase
	Status   timer.Status
	Mode     input.Mode
	Inputs   [3]string
	Focus    input.Focus
	// FullBorder draws the outer frame; set while the timer is paused.
	FullBorder bool
}

// NewView snapshots the timer and editor.
func NewView(title string, tm *timer.Timer, ed *input.Editor) View {
	return View{
		Title:      title,
		Progress:   tm.Progress(),
		Percent:    tm.Percent(),
		Phase:      tm.Phase(),
		Status:     tm.Status(),
		Mode:       ed.Mode(),
		Inputs:     ed.Inputs(),
		Focus:      ed.Focus(),
		FullBorder: tm.Status() == timer.StatusPaused,
	}
}
