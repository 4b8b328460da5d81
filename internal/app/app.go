package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"pomo/internal/config"
	"pomo/internal/input"
	"pomo/internal/ipc"
	"pomo/internal/notify"
	"pomo/internal/timer"
	"pomo/internal/ui"
)

// ErrEventsClosed is returned by Run when the terminal stops delivering
// events while the timer is still alive.
var ErrEventsClosed = errors.New("terminal event stream closed")

type App struct {
	cfg      *config.Config
	term     *ui.Terminal
	timer    *timer.Timer
	editor   *input.Editor
	notifier notify.Notifier

	tickRate time.Duration
	now      func() time.Time

	// Communication channels
	events     chan tcell.Event
	stopEvents chan struct{}
	requests   chan request

	// --- Socket Handling ---
	socketPath string
	listener   *net.UnixListener

	sigChan chan os.Signal
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// request is a control command waiting to be applied by the loop.
type request struct {
	cmd   ipc.Command
	reply chan ipc.Response
}

func NewApp(cfg *config.Config, screen tcell.Screen) *App {
	ctx, cancel := context.WithCancel(context.Background())
	term := ui.NewTerminal(screen)

	a := &App{
		cfg:        cfg,
		term:       term,
		timer:      timer.New(cfg.Timer.WorkSeconds(), cfg.Timer.BreakSeconds()),
		editor:     input.NewEditor(),
		tickRate:   cfg.Timer.Tick,
		now:        time.Now,
		events:     make(chan tcell.Event, 16),
		stopEvents: make(chan struct{}),
		requests:   make(chan request),
		socketPath: cfg.Control.SocketPath,
		ctx:        ctx,
		cancel:     cancel,
	}
	a.notifier = notify.NewDesktop(notify.Options{
		AppName:    cfg.Notify.AppName,
		Desktop:    cfg.Notify.Desktop,
		Bell:       cfg.Notify.Bell,
		WorkSound:  cfg.Notify.WorkSound,
		BreakSound: cfg.Notify.BreakSound,
		TimeoutMs:  cfg.Notify.TimeoutMs,
	}, term)
	return a
}

// Run takes over the terminal and drives the timer until it quits. The
// terminal is restored on every exit path, including panics.
func (a *App) Run() error {
	if err := a.term.Setup(); err != nil {
		return err
	}
	defer a.cleanup()
	defer func() {
		if r := recover(); r != nil {
			a.term.Cleanup()
			panic(r)
		}
	}()

	log.Printf("Starting pomo (work %s, break %s, tick %s)", a.cfg.Timer.Work, a.cfg.Timer.Break, a.tickRate)

	if a.cfg.Control.Enabled {
		if err := a.setupSocket(); err != nil {
			log.Printf("Warning: control socket disabled: %v", err)
		} else {
			a.wg.Add(1)
			go a.listenForCommands()
		}
	}

	a.handleSignals()
	a.term.Events(a.events, a.stopEvents)

	if err := a.loop(); err != nil {
		return fmt.Errorf("event loop: %w", err)
	}
	return nil
}

// loop runs iterations until the timer quits.
func (a *App) loop() error {
	lastTick := a.now()

	for {
		var err error
		if lastTick, err = a.step(lastTick); err != nil {
			return err
		}

		if a.timer.Status() == timer.StatusQuit {
			log.Println("Quit requested.")
			return nil
		}
	}
}

// step renders, waits for input until the next tick is due, and ticks. It
// returns the start of the current tick period. The status that decides
// whether to tick is sampled before input is handled, so a pause typed
// mid-second does not swallow that tick.
func (a *App) step(lastTick time.Time) (time.Time, error) {
	a.term.Draw(ui.NewView(a.cfg.Title, a.timer, a.editor))

	timeout := a.tickRate - a.now().Sub(lastTick)
	if timeout < 0 {
		timeout = 0
	}

	lastStatus := a.timer.Status()

	if err := a.waitInput(lastStatus == timer.StatusPaused, timeout); err != nil {
		return lastTick, err
	}

	if a.now().Sub(lastTick) >= a.tickRate {
		if lastStatus == timer.StatusRunning {
			notify.Transition(a.notifier, a.timer.Tick())
		}
		lastTick = a.now()
	}
	return lastTick, nil
}

// waitInput handles at most one input. With block set it waits for one
// however long it takes; otherwise it gives up after timeout, and does not
// wait at all once the timeout is used up.
func (a *App) waitInput(block bool, timeout time.Duration) error {
	if !block && timeout <= 0 {
		select {
		case ev, ok := <-a.events:
			return a.handleEvent(ev, ok)
		case req := <-a.requests:
			a.handleRequest(req)
		case <-a.ctx.Done():
			a.shutdown()
		default:
		}
		return nil
	}

	var expired <-chan time.Time
	if !block {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}

	select {
	case ev, ok := <-a.events:
		return a.handleEvent(ev, ok)
	case req := <-a.requests:
		a.handleRequest(req)
	case <-a.ctx.Done():
		a.shutdown()
	case <-expired:
	}
	return nil
}

func (a *App) handleEvent(ev tcell.Event, ok bool) error {
	if !ok {
		return ErrEventsClosed
	}
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.editor.Handle(ui.DecodeKey(ev), a.timer)
	case *tcell.EventResize:
		a.term.Resize()
	}
	return nil
}

func (a *App) handleRequest(req request) {
	req.reply <- a.processCommand(req.cmd)
}

func (a *App) shutdown() {
	log.Println("Shutdown signal received.")
	a.timer.Quit()
}

// handleSignals turns SIGTERM and SIGHUP into a quit. SIGINT is included
// for terminals that are not in raw mode.
func (a *App) handleSignals() {
	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		select {
		case sig := <-a.sigChan:
			log.Printf("Received signal: %v. Initiating shutdown...", sig)
			a.cancel()
		case <-a.ctx.Done():
		}
	}()
}

func (a *App) cleanup() {
	a.once.Do(func() {
		log.Println("Running cleanup...")

		if a.sigChan != nil {
			signal.Stop(a.sigChan)
		}
		close(a.stopEvents)
		a.cancel()

		if a.listener != nil {
			if err := a.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				log.Printf("Error closing socket listener: %v", err)
			}
		}

		waitChan := make(chan struct{})
		go func() {
			a.wg.Wait()
			close(waitChan)
		}()
		select {
		case <-waitChan:
		case <-time.After(2 * time.Second):
			log.Println("Warning: Timeout waiting for socket handlers to stop.")
		}

		if a.listener != nil {
			a.removeSocket()
		}
		a.term.Cleanup()

		log.Println("Cleanup finished.")
	})
}
