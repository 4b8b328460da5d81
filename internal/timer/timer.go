package timer

import (
	"pomo/internal/event"
	"pomo/internal/timeutil"
)

// Status is the run state of a Timer.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusQuit
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusQuit:
		return "quit"
	}
	return "unknown"
}

// Command is a user request applied through On.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandToggle
	CommandStop
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandToggle:
		return "toggle"
	case CommandStop:
		return "stop"
	}
	return "none"
}

// Timer alternates between a work phase and a break phase, counting the
// current phase down one second per Tick. It is not safe for concurrent
// use; the event loop owns it.
//
// progress never exceeds the duration of the current phase, and once the
// status is StatusQuit nothing changes anymore.
type Timer struct {
	workDuration  uint64 // in seconds
	breakDuration uint64 // in seconds
	progress      uint64 // seconds left in the current phase
	isWorking     bool
	status        Status
}

// New returns a running Timer at the start of a work phase.
func New(workDuration, breakDuration uint64) *Timer {
	return &Timer{
		workDuration:  workDuration,
		breakDuration: breakDuration,
		progress:      workDuration,
		isWorking:     true,
		status:        StatusRunning,
	}
}

// Tick advances the countdown by one second while running. When the phase
// has already run out, Tick switches to the other phase instead, pauses,
// and reports which phase began. A single call never does both.
func (t *Timer) Tick() event.Transition {
	if t.status == StatusQuit {
		return event.TransitionNone
	}
	if t.status == StatusRunning && t.progress > 0 {
		t.progress--
		return event.TransitionNone
	}
	if t.progress > 0 {
		return event.TransitionNone
	}

	t.status = StatusPaused
	if t.isWorking {
		t.isWorking = false
		t.progress = t.breakDuration
		return event.TransitionBreakBegun
	}
	t.isWorking = true
	t.progress = t.workDuration
	return event.TransitionWorkBegun
}

// Toggle switches between running and paused.
func (t *Timer) Toggle() {
	switch t.status {
	case StatusRunning:
		t.status = StatusPaused
	case StatusPaused:
		t.status = StatusRunning
	}
}

// Stop pauses and rewinds to the beginning of a work phase.
func (t *Timer) Stop() {
	if t.status == StatusQuit {
		return
	}
	t.status = StatusPaused
	t.isWorking = true
	t.progress = t.workDuration
}

func (t *Timer) Quit() {
	t.status = StatusQuit
}

// On applies a command.
func (t *Timer) On(cmd Command) {
	switch cmd {
	case CommandQuit:
		t.Quit()
	case CommandToggle:
		t.Toggle()
	case CommandStop:
		t.Stop()
	}
}

// SetWorkDuration replaces the work duration. During a work phase the
// remaining time is replaced as well, so edits show up immediately.
func (t *Timer) SetWorkDuration(secs uint64) {
	if t.status == StatusQuit {
		return
	}
	t.workDuration = secs
	if t.isWorking {
		t.progress = secs
	}
}

// SetBreakDuration replaces the break duration. During a break the
// remaining time is clamped to the new duration.
func (t *Timer) SetBreakDuration(secs uint64) {
	if t.status == StatusQuit {
		return
	}
	t.breakDuration = secs
	if !t.isWorking && t.progress > secs {
		t.progress = secs
	}
}

// SetIsWorking forces the phase and restarts it from its full duration.
func (t *Timer) SetIsWorking(working bool) {
	if t.status == StatusQuit {
		return
	}
	t.isWorking = working
	t.progress = t.PhaseDuration()
}

// Progress returns the remaining time as HH:MM:SS.
func (t *Timer) Progress() string {
	return timeutil.Clock(t.progress)
}

func (t *Timer) ProgressSecs() uint64 { return t.progress }

func (t *Timer) Status() Status { return t.status }

func (t *Timer) IsWorking() bool { return t.isWorking }

func (t *Timer) WorkDuration() uint64 { return t.workDuration }

func (t *Timer) BreakDuration() uint64 { return t.breakDuration }

// PhaseDuration is the configured length of the current phase.
func (t *Timer) PhaseDuration() uint64 {
	if t.isWorking {
		return t.workDuration
	}
	return t.breakDuration
}

// Phase names the current phase.
func (t *Timer) Phase() event.Phase {
	if t.isWorking {
		return event.PhaseWork
	}
	return event.PhaseBreak
}

// Percent is the elapsed share of the current phase, 0 to 100.
func (t *Timer) Percent() uint16 {
	return timeutil.Percent(t.progress, t.PhaseDuration())
}
