package input

import (
	"strconv"

	"pomo/internal/timer"
	"pomo/internal/timeutil"
)

// Mode selects which duration, if any, is being edited.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditingWork
	ModeEditingBreak
)

func (m Mode) String() string {
	switch m {
	case ModeEditingWork:
		return "editing_work"
	case ModeEditingBreak:
		return "editing_break"
	}
	return "normal"
}

// Editing reports whether m is one of the editing modes.
func (m Mode) Editing() bool {
	return m == ModeEditingWork || m == ModeEditingBreak
}

// Focus is the field of the hours/minutes/seconds triple being typed into.
type Focus int

const (
	FocusHours Focus = iota
	FocusMinutes
	FocusSeconds
)

const fieldCount = 3

// FieldTitles labels the fields in Focus order.
var FieldTitles = [fieldCount]string{"Hours", "Minutes", "Seconds"}

func (f Focus) String() string {
	if f < 0 || int(f) >= fieldCount {
		return "unknown"
	}
	return FieldTitles[f]
}

// Editor stages new work and break durations typed by the user. While one
// of the editing modes is active it owns every keystroke and keeps the
// timer paused, pushing the typed duration into it after each edit.
//
// Esc returns to normal mode from anywhere and forces the work phase.
// Buffers survive leaving and re-entering edit mode.
type Editor struct {
	mode  Mode
	focus Focus
	work  [fieldCount]string
	brk   [fieldCount]string
}

func NewEditor() *Editor {
	return &Editor{}
}

func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) Focus() Focus { return e.focus }

// Inputs returns the buffers of the duration being edited. In normal mode
// it returns the work buffers.
func (e *Editor) Inputs() [fieldCount]string {
	if e.mode == ModeEditingBreak {
		return e.brk
	}
	return e.work
}

// Input returns the buffers staged for the given editing mode.
func (e *Editor) Input(mode Mode) [fieldCount]string {
	if mode == ModeEditingBreak {
		return e.brk
	}
	return e.work
}

// Handle interprets one key press, updating the editor and driving tm.
func (e *Editor) Handle(k Key, tm *timer.Timer) {
	if k.Kind == KeyEsc {
		e.mode = ModeNormal
		e.focus = FocusHours
		tm.SetIsWorking(true)
		return
	}

	if !e.mode.Editing() {
		switch {
		case k.Kind == KeyRune && k.Rune == 'w':
			e.enter(ModeEditingWork, tm)
		case k.Kind == KeyRune && k.Rune == 'b':
			e.enter(ModeEditingBreak, tm)
		default:
			tm.On(CommandFor(k))
		}
		return
	}

	switch k.Kind {
	case KeyTab:
		e.focus = (e.focus + 1) % fieldCount
	case KeyBackTab:
		e.focus = (e.focus + fieldCount - 1) % fieldCount
	case KeyBackspace:
		if e.deleteInput() {
			e.apply(tm)
		}
	case KeyRune:
		if e.setInput(k.Rune) {
			e.apply(tm)
		}
	}
}

// enter switches to an editing mode. Buffers kept from an earlier edit are
// pushed into the timer again, since it may have been retimed meanwhile.
func (e *Editor) enter(mode Mode, tm *timer.Timer) {
	e.mode = mode
	tm.Stop()
	tm.SetIsWorking(mode == ModeEditingWork)
	if *e.buffers() != ([fieldCount]string{}) {
		e.apply(tm)
	}
}

func (e *Editor) buffers() *[fieldCount]string {
	if e.mode == ModeEditingBreak {
		return &e.brk
	}
	return &e.work
}

// setInput appends an ASCII digit to the focused buffer. Minutes and
// seconds must stay below 60, hours must fit in a uint64.
func (e *Editor) setInput(c rune) bool {
	if c < '0' || c > '9' {
		return false
	}
	bufs := e.buffers()
	next := bufs[e.focus] + string(c)
	n, err := strconv.ParseUint(next, 10, 64)
	if err != nil {
		return false
	}
	if e.focus != FocusHours && n >= timeutil.SecondsInMinute {
		return false
	}
	bufs[e.focus] = next
	return true
}

func (e *Editor) deleteInput() bool {
	bufs := e.buffers()
	cur := bufs[e.focus]
	if cur == "" {
		return false
	}
	bufs[e.focus] = cur[:len(cur)-1]
	return true
}

// apply pushes the typed duration into the timer.
func (e *Editor) apply(tm *timer.Timer) {
	secs := Total(*e.buffers())
	switch e.mode {
	case ModeEditingWork:
		tm.SetWorkDuration(secs)
	case ModeEditingBreak:
		tm.SetBreakDuration(secs)
		tm.SetIsWorking(false)
	}
}

// Total converts an hours/minutes/seconds triple of buffers to seconds.
func Total(bufs [fieldCount]string) uint64 {
	return timeutil.ToSecs(parseField(bufs[FocusHours]), parseField(bufs[FocusMinutes]), parseField(bufs[FocusSeconds]))
}

// parseField reads a buffer, treating empty or unparsable text as zero.
func parseField(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
