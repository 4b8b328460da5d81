// Package notify announces phase changes outside the terminal: a desktop
// notification over D-Bus followed by a sound, or the terminal bell when
// no sound is configured.
//
// The bell is rung on the caller's goroutine, since it writes to the same
// screen the event loop draws on. The popup and the sound run on a detached
// goroutine. Nothing waits for it, cancels it or sees its errors; they are
// only logged. If phases change faster than a sound plays, announcements
// overlap.
package notify

import (
	"fmt"
	"log"
	"os/exec"
	"strings"

	"github.com/godbus/dbus/v5"

	"pomo/internal/event"
)

const (
	dbusDest      = "org.freedesktop.Notifications"
	dbusPath      = "/org/freedesktop/Notifications"
	dbusNotifyMth = dbusDest + ".Notify"
)

// Notifier is told when a phase begins. Implementations must return
// quickly; the event loop calls them between ticks.
type Notifier interface {
	WorkBegun()
	BreakBegun()
}

// Beeper rings a bell, typically the terminal's. Beep must not block.
type Beeper interface {
	Beep() error
}

// Options configures a Desktop notifier.
type Options struct {
	AppName    string
	Desktop    bool
	Bell       bool
	WorkSound  string // command line, e.g. "paplay /usr/share/sounds/work.ogg"
	BreakSound string
	TimeoutMs  int32
}

// Desktop is the Notifier used by the application.
type Desktop struct {
	opts   Options
	beeper Beeper

	// Replaced in tests.
	show func(n event.Notification) error
	play func(cmdline string) error
	goFn func(func())
}

// NewDesktop connects to the session bus when desktop notifications are
// enabled. A missing bus only disables the popups.
func NewDesktop(opts Options, beeper Beeper) *Desktop {
	d := &Desktop{
		opts:   opts,
		beeper: beeper,
		play:   runSound,
		goFn:   func(f func()) { go f() },
	}
	if opts.Desktop {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			log.Printf("Warning: desktop notifications disabled: %v", err)
		} else {
			d.show = func(n event.Notification) error {
				return sendDBus(conn, opts, n)
			}
		}
	}
	return d
}

func (d *Desktop) WorkBegun() {
	d.notify(event.WorkNotification, d.opts.WorkSound)
}

func (d *Desktop) BreakBegun() {
	d.notify(event.BreakNotification, d.opts.BreakSound)
}

// Transition dispatches a timer transition to n.
func Transition(n Notifier, t event.Transition) {
	switch t {
	case event.TransitionWorkBegun:
		n.WorkBegun()
	case event.TransitionBreakBegun:
		n.BreakBegun()
	}
}

func (d *Desktop) notify(n event.Notification, sound string) {
	log.Printf("Notification: [%s] %s", n.Title, n.Message)

	if sound == "" && d.opts.Bell && d.beeper != nil {
		if err := d.beeper.Beep(); err != nil {
			log.Printf("Warning: failed to ring bell: %v", err)
		}
	}

	show, play := d.show, d.play
	if show == nil && sound == "" {
		return
	}
	d.goFn(func() {
		if show != nil {
			if err := show(n); err != nil {
				log.Printf("Warning: failed to show notification: %v", err)
			}
		}
		if sound != "" {
			if err := play(sound); err != nil {
				log.Printf("Warning: failed to play sound %q: %v", sound, err)
			}
		}
	})
}

func sendDBus(conn *dbus.Conn, opts Options, n event.Notification) error {
	obj := conn.Object(dbusDest, dbus.ObjectPath(dbusPath))
	call := obj.Call(dbusNotifyMth, 0,
		opts.AppName,
		uint32(0),
		"",
		n.Title,
		n.Message,
		[]string{},
		map[string]dbus.Variant{},
		opts.TimeoutMs,
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	return nil
}

// runSound runs a player command line to completion.
func runSound(cmdline string) error {
	args := strings.Fields(cmdline)
	if len(args) == 0 {
		return nil
	}
	return exec.Command(args[0], args[1:]...).Run()
}
