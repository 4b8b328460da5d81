package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/input"
	"pomo/internal/timer"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	term := NewTerminal(sim)
	require.NoError(t, term.Setup())
	sim.SetSize(w, h)
	t.Cleanup(term.Cleanup)
	return term, sim
}

// screenText returns the simulated screen contents, one string per row.
func screenText(sim tcell.SimulationScreen) []string {
	cells, w, h := sim.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		rows[y] = b.String()
	}
	return rows
}

func findRow(rows []string, substr string) int {
	for i, row := range rows {
		if strings.Contains(row, substr) {
			return i
		}
	}
	return -1
}

func TestDrawNormalMode(t *testing.T) {
	term, sim := newSimTerminal(t, 80, 24)
	tm := timer.New(3600, 900)
	ed := input.NewEditor()

	term.Draw(NewView("Pomodoro", tm, ed))
	rows := screenText(sim)

	assert.Contains(t, rows[0], "Pomodoro")
	assert.NotEqual(t, -1, findRow(rows, "01:00:00"))
	assert.NotEqual(t, -1, findRow(rows, " Work "))
	assert.NotEqual(t, -1, findRow(rows, "0%"))
	assert.NotEqual(t, -1, findRow(rows, "q quit"))
	assert.Equal(t, -1, findRow(rows, "Minutes"))

	_, _, visible := sim.GetCursor()
	assert.False(t, visible)
}

func TestDrawPausedShowsFullBorder(t *testing.T) {
	term, sim := newSimTerminal(t, 80, 24)
	tm := timer.New(10, 5)
	ed := input.NewEditor()

	term.Draw(NewView("Pomodoro", tm, ed))
	rows := screenText(sim)
	assert.NotEqual(t, '│', []rune(rows[5])[0])

	tm.Toggle()
	term.Draw(NewView("Pomodoro", tm, ed))
	rows = screenText(sim)
	assert.Equal(t, '│', []rune(rows[5])[0])
	assert.NotEqual(t, -1, findRow(rows, "Work (paused)"))
}

func TestDrawEditing(t *testing.T) {
	term, sim := newSimTerminal(t, 80, 24)
	tm := timer.New(3600, 900)
	ed := input.NewEditor()

	ed.Handle(input.Rune('b'), tm)
	ed.Handle(input.Key{Kind: input.KeyTab}, tm)
	ed.Handle(input.Rune('4'), tm)
	ed.Handle(input.Rune('2'), tm)

	view := NewView("Pomodoro", tm, ed)
	require.True(t, view.FullBorder)
	term.Draw(view)
	rows := screenText(sim)

	assert.NotEqual(t, -1, findRow(rows, "00:42:00"))
	assert.NotEqual(t, -1, findRow(rows, "Break (paused)"))
	assert.NotEqual(t, -1, findRow(rows, "Edit break"))
	assert.NotEqual(t, -1, findRow(rows, "Hours │ Minutes │ Seconds"))
	assert.NotEqual(t, -1, findRow(rows, "esc done"))

	fieldRow := findRow(rows, " Minutes ─")
	require.NotEqual(t, -1, fieldRow)
	assert.Contains(t, rows[fieldRow+1], "42")

	x, y, visible := sim.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, fieldRow+1, y)
	assert.Equal(t, '4', []rune(rows[y])[x-2])
	assert.Equal(t, '2', []rune(rows[y])[x-1])
}

func TestDrawGaugePercent(t *testing.T) {
	term, sim := newSimTerminal(t, 80, 24)
	tm := timer.New(4, 2)
	tm.Tick()
	tm.Tick()

	term.Draw(NewView("Pomodoro", tm, input.NewEditor()))
	assert.NotEqual(t, -1, findRow(screenText(sim), "50%"))
}

func TestDrawTinyScreen(t *testing.T) {
	term, _ := newSimTerminal(t, 1, 1)
	assert.NotPanics(t, func() {
		term.Draw(NewView("Pomodoro", timer.New(10, 5), input.NewEditor()))
	})
}

func TestCleanupTwice(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 10)
	term.Cleanup()
	assert.NotPanics(t, term.Cleanup)
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want input.Key
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input.Rune('q')},
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), input.Rune('7')},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.Key{Kind: input.KeyEsc}},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), input.Key{Kind: input.KeyTab}},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), input.Key{Kind: input.KeyBackTab}},
		{tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), input.Key{Kind: input.KeyBackspace}},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), input.Key{Kind: input.KeyBackspace}},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), input.Rune('q')},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.Key{}},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.Key{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeKey(tt.ev), "DecodeKey(%v)", tt.ev.Name())
	}
}
