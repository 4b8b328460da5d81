package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"time"

	"pomo/internal/ipc"
	"pomo/internal/timer"
)

const (
	connTimeout    = 5 * time.Second
	requestTimeout = 2 * time.Second
)

// setupSocket checks for existing socket and creates the listener
func (a *App) setupSocket() error {
	if _, err := os.Stat(a.socketPath); err == nil {
		conn, err := net.DialTimeout("unix", a.socketPath, time.Second)
		if err == nil {
			conn.Close()
			return fmt.Errorf("socket %s already active, another instance might be running", a.socketPath)
		}
		log.Printf("Stale socket file found at %s, removing.", a.socketPath)
		if err := os.Remove(a.socketPath); err != nil {
			return fmt.Errorf("failed to remove stale socket file %s: %w", a.socketPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking socket file %s: %w", a.socketPath, err)
	}

	addr, err := net.ResolveUnixAddr("unix", a.socketPath)
	if err != nil {
		return fmt.Errorf("failed to resolve unix addr %s: %w", a.socketPath, err)
	}

	listener, err := net.ListenUnix("unix", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on socket %s: %w", a.socketPath, err)
	}
	if err := os.Chmod(a.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set permissions on socket %s: %w", a.socketPath, err)
	}

	a.listener = listener
	log.Printf("Listening for commands on %s", a.socketPath)
	return nil
}

// listenForCommands accepts connections and handles them
func (a *App) listenForCommands() {
	defer a.wg.Done()
	defer log.Println("Socket command listener stopped.")

	for {
		conn, err := a.listener.AcceptUnix()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || a.ctx.Err() != nil {
				return
			}
			log.Printf("Failed to accept connection: %v", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}
		a.wg.Add(1)
		go a.handleConnection(conn)
	}
}

// handleConnection reads one command, hands it to the loop and writes the
// response.
func (a *App) handleConnection(conn *net.UnixConn) {
	defer conn.Close()
	defer a.wg.Done()

	conn.SetReadDeadline(time.Now().Add(connTimeout))

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var cmd ipc.Command
	if err := decoder.Decode(&cmd); err != nil {
		if err != io.EOF {
			log.Printf("Failed to decode command: %v", err)
		}
		_ = encoder.Encode(ipc.Response{Success: false, Message: "Failed to decode command: " + err.Error()})
		return
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Now().Add(connTimeout))

	log.Printf("Received command: %s", cmd.Name)

	if err := encoder.Encode(a.dispatch(cmd)); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// dispatch hands cmd to the event loop, which owns the timer, and waits
// for its answer.
func (a *App) dispatch(cmd ipc.Command) ipc.Response {
	req := request{cmd: cmd, reply: make(chan ipc.Response, 1)}

	select {
	case a.requests <- req:
	case <-a.ctx.Done():
		return ipc.Response{Success: false, Message: "App is shutting down"}
	case <-time.After(requestTimeout):
		return ipc.Response{Success: false, Message: "Timeout delivering command"}
	}

	select {
	case resp := <-req.reply:
		return resp
	case <-a.ctx.Done():
		// A quit cancels the context right after replying.
		select {
		case resp := <-req.reply:
			return resp
		default:
		}
		return ipc.Response{Success: false, Message: "App is shutting down"}
	case <-time.After(requestTimeout):
		return ipc.Response{Success: false, Message: "Timeout waiting for response"}
	}
}

// processCommand runs on the loop goroutine.
func (a *App) processCommand(cmd ipc.Command) ipc.Response {
	switch cmd.Name {
	case ipc.CmdPing:
		return ipc.Response{Success: true, Message: "pong"}

	case ipc.CmdStatus:
		return ipc.Response{Success: true, Data: a.status()}

	case ipc.CmdQuit:
		a.timer.Quit()
		return ipc.Response{Success: true, Message: "Quitting"}

	case ipc.CmdToggle, ipc.CmdStop:
		if a.editor.Mode().Editing() {
			return ipc.Response{Success: false, Message: "Durations are being edited"}
		}
		if cmd.Name == ipc.CmdToggle {
			a.timer.On(timer.CommandToggle)
		} else {
			a.timer.On(timer.CommandStop)
		}
		return ipc.Response{Success: true, Message: fmt.Sprintf("Timer %s", a.timer.Status())}

	case ipc.CmdSetDurations:
		if a.editor.Mode().Editing() {
			return ipc.Response{Success: false, Message: "Durations are being edited"}
		}
		var args ipc.SetDurationsArgs
		if err := ipc.DecodeArgs(cmd.Args, &args); err != nil {
			return ipc.Response{Success: false, Message: fmt.Sprintf("Invalid args for %s: %v", cmd.Name, err)}
		}
		work, err := parseSeconds(args.Work)
		if err != nil {
			return ipc.Response{Success: false, Message: fmt.Sprintf("Invalid work duration '%s': %v", args.Work, err)}
		}
		brk, err := parseSeconds(args.Break)
		if err != nil {
			return ipc.Response{Success: false, Message: fmt.Sprintf("Invalid break duration '%s': %v", args.Break, err)}
		}
		if work > 0 {
			a.timer.SetWorkDuration(work)
		}
		if brk > 0 {
			a.timer.SetBreakDuration(brk)
		}
		return ipc.Response{Success: true, Message: "Durations updated", Data: a.status()}

	default:
		return ipc.Response{Success: false, Message: fmt.Sprintf("Unknown command: %s", cmd.Name)}
	}
}

func (a *App) status() ipc.StatusData {
	return ipc.StatusData{
		Phase:         string(a.timer.Phase()),
		Status:        a.timer.Status().String(),
		Mode:          a.editor.Mode().String(),
		Remaining:     a.timer.Progress(),
		RemainingSecs: a.timer.ProgressSecs(),
		Percent:       a.timer.Percent(),
		WorkSecs:      a.timer.WorkDuration(),
		BreakSecs:     a.timer.BreakDuration(),
	}
}

// parseSeconds reads a Go duration of at least one second. Empty input
// yields zero.
func parseSeconds(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < time.Second {
		return 0, errors.New("must be at least 1s")
	}
	return uint64(d / time.Second), nil
}

func (a *App) removeSocket() {
	if _, err := os.Stat(a.socketPath); err == nil {
		log.Printf("Removing socket file: %s", a.socketPath)
		if err := os.Remove(a.socketPath); err != nil {
			log.Printf("Warning: Failed to remove socket file %s: %v", a.socketPath, err)
		}
	}
}
