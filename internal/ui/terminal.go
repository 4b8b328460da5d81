package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"pomo/internal/event"
	"pomo/internal/input"
	"pomo/internal/timer"
)

const (
	clockHeight = 5
	boxHeight   = 3
	minPanel    = 26

	normalHelp  = "space start/pause · s stop · w edit work · b edit break · q quit"
	editingHelp = "tab/shift+tab field · 0-9 type · backspace delete · esc done"
)

// Terminal owns the tcell screen: raw mode and the alternate screen are
// entered by Setup and left by Cleanup. tview primitives are drawn straight
// onto the screen without a tview.Application.
type Terminal struct {
	screen tcell.Screen
	open   bool

	frame *tview.Box
	clock *tview.TextView
	tabs  *tview.TextView
	field *tview.TextView
}

func NewTerminal(screen tcell.Screen) *Terminal {
	frame := tview.NewBox().SetTitleAlign(tview.AlignLeft)
	frame.SetBackgroundColor(tcell.ColorDefault)

	clock := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetWrap(false)
	clock.SetBorder(true).SetBackgroundColor(tcell.ColorDefault)

	tabs := tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	tabs.SetBorder(true).SetBackgroundColor(tcell.ColorDefault)

	field := tview.NewTextView().SetWrap(false)
	field.SetBorder(true).SetBackgroundColor(tcell.ColorDefault)

	return &Terminal{
		screen: screen,
		frame:  frame,
		clock:  clock,
		tabs:   tabs,
		field:  field,
	}
}

// Setup switches the terminal into raw mode on the alternate screen.
func (t *Terminal) Setup() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.open = true
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

// Cleanup restores the terminal. It is safe to call more than once.
func (t *Terminal) Cleanup() {
	if !t.open {
		return
	}
	t.open = false
	t.screen.Fini()
}

// Events pumps screen events into ch until quit is closed.
func (t *Terminal) Events(ch chan<- tcell.Event, quit <-chan struct{}) {
	go t.screen.ChannelEvents(ch, quit)
}

// Resize repaints the whole screen after the terminal changed size.
func (t *Terminal) Resize() {
	t.screen.Sync()
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() error {
	return t.screen.Beep()
}

// Draw renders one frame.
func (t *Terminal) Draw(v View) {
	s := t.screen
	s.Clear()
	w, h := s.Size()
	if w < 2 || h < 2 {
		s.Show()
		return
	}

	title := " " + v.Title + " "
	t.frame.SetBorder(v.FullBorder)
	t.frame.SetTitle(title)
	t.frame.SetRect(0, 0, w, h)
	t.frame.Draw(s)

	ix, iy, iw, ih := 1, 1, w-2, h-2
	if !v.FullBorder {
		tview.Print(s, title, 1, 0, w-2, tview.AlignLeft, tview.Styles.TitleColor)
		ix, iw, ih = 0, w, h-1
	}

	editing := v.Mode.Editing()
	stack := clockHeight + 2
	if editing {
		stack += 2 * boxHeight
	}
	pw := iw / 2
	if pw < minPanel {
		pw = min(iw, minPanel)
	}
	px := ix + (iw-pw)/2
	py := iy + max(0, (ih-1-stack)/2)

	color := phaseColor(v.Phase)
	t.clock.SetBorderColor(color)
	t.clock.SetTitle(clockTitle(v))
	t.clock.SetText("\n" + v.Progress)
	t.clock.SetRect(px, py, pw, clockHeight)
	t.clock.Draw(s)

	drawGauge(s, px, py+clockHeight, pw, v.Percent, color)

	if editing {
		ty := py + clockHeight + 2
		t.tabs.SetTitle(editTitle(v.Mode))
		t.tabs.SetText(tabTitles(v.Focus))
		t.tabs.SetRect(px, ty, pw, boxHeight)
		t.tabs.Draw(s)

		text := v.Inputs[v.Focus]
		fy := ty + boxHeight
		t.field.SetTitle(" " + input.FieldTitles[v.Focus] + " ")
		t.field.SetText(text)
		t.field.SetRect(px, fy, pw, boxHeight)
		t.field.Draw(s)
		s.ShowCursor(px+1+runewidth.StringWidth(text), fy+1)
	} else {
		s.HideCursor()
	}

	help := normalHelp
	if editing {
		help = editingHelp
	}
	tview.Print(s, help, ix, iy+ih-1, iw, tview.AlignCenter, tcell.ColorGray)

	s.Show()
}

func phaseColor(p event.Phase) tcell.Color {
	if p == event.PhaseBreak {
		return tcell.ColorDodgerBlue
	}
	return tcell.ColorGreen
}

func clockTitle(v View) string {
	label := "Work"
	if v.Phase == event.PhaseBreak {
		label = "Break"
	}
	if v.Status == timer.StatusPaused {
		label += " (paused)"
	}
	return " " + label + " "
}

func editTitle(m input.Mode) string {
	if m == input.ModeEditingBreak {
		return " Edit break "
	}
	return " Edit work "
}

// tabTitles renders the field names, first letter yellow and the rest
// green, with the focused one highlighted.
func tabTitles(focus input.Focus) string {
	var b strings.Builder
	for i, title := range input.FieldTitles {
		if i > 0 {
			b.WriteString("[white] │ ")
		}
		attr := ""
		if input.Focus(i) == focus {
			attr = ":black:b"
		}
		fmt.Fprintf(&b, "[yellow%s]%s[green%s]%s[-:-:-]", attr, title[:1], attr, title[1:])
	}
	return b.String()
}

func drawGauge(s tcell.Screen, x, y, width int, percent uint16, color tcell.Color) {
	if width <= 0 {
		return
	}
	filled := width * int(percent) / 100
	label := fmt.Sprintf("%d%%", percent)
	start := (width - len(label)) / 2

	for i := 0; i < width; i++ {
		style := tcell.StyleDefault
		if i < filled {
			style = style.Background(color).Foreground(tcell.ColorBlack)
		}
		r := ' '
		if j := i - start; j >= 0 && j < len(label) {
			r = rune(label[j])
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}
