package ipc

import (
	"encoding/json"
	"fmt"
)

// Command represents a command sent over the socket
type Command struct {
	Name string      `json:"name"`
	Args interface{} `json:"args,omitempty"`
}

// Response represents a response sent back over the socket
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// --- Command Argument Structs ---

// SetDurationsArgs carries Go duration strings ("25m", "1h30m"). Empty
// fields leave the duration unchanged.
type SetDurationsArgs struct {
	Work  string `json:"work,omitempty"`
	Break string `json:"break,omitempty"`
}

// --- Command Names (Constants) ---

const (
	CmdPing         = "ping"
	CmdStatus       = "status"
	CmdToggle       = "toggle"
	CmdStop         = "stop"
	CmdQuit         = "quit"
	CmdSetDurations = "set_durations"
)

// --- Status Response Data ---
type StatusData struct {
	Phase         string `json:"phase"`  // work or break
	Status        string `json:"status"` // running, paused or quit
	Mode          string `json:"mode"`   // editor mode
	Remaining     string `json:"remaining"`
	RemainingSecs uint64 `json:"remaining_secs"`
	Percent       uint16 `json:"percent"`
	WorkSecs      uint64 `json:"work_secs"`
	BreakSecs     uint64 `json:"break_secs"`
}

// DecodeArgs converts the loosely typed Args of a decoded Command into
// output.
func DecodeArgs(input interface{}, output interface{}) error {
	if input == nil {
		return nil
	}
	jsonBytes, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal args map: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, output); err != nil {
		return fmt.Errorf("failed to unmarshal args into struct: %w", err)
	}
	return nil
}
