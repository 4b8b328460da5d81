package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pomo/internal/config"
	"pomo/internal/ipc"
)

const replyTimeout = 5 * time.Second

var (
	socketPath string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pomo-cli",
	Short: "CLI tool to control a running pomo timer",
	Long:  `A command-line interface to pause, reset or retime a running pomo timer via its Unix socket.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			log.SetOutput(io.Discard)
		}
		path, err := resolveSocketPath(cmd.Flags().Changed("socket"), socketPath, configPath)
		if err != nil {
			return err
		}
		socketPath = path
		return nil
	},
}

// resolveSocketPath prefers an explicit --socket, then the socket configured
// for pomo itself (config file or POMO_CONTROL_SOCKET_PATH).
func resolveSocketPath(explicit bool, flagValue, cfgPath string) (string, error) {
	if explicit {
		return flagValue, nil
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg.Control.SocketPath, nil
}

// --- Client Helper Function ---
func sendCommand(cmd ipc.Command) {
	resp, err := ipc.Send(socketPath, cmd, replyTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nIs pomo running?\n", err)
		os.Exit(1)
	}

	if !resp.Success {
		fmt.Fprintf(os.Stderr, "Error: %s\n", resp.Message)
		os.Exit(1)
	}

	if resp.Message != "" {
		fmt.Println("Success:", resp.Message)
	} else {
		fmt.Println("Success")
	}
	if resp.Data != nil {
		prettyData, err := json.MarshalIndent(resp.Data, "", "  ")
		if err == nil {
			fmt.Println("Data:")
			fmt.Println(string(prettyData))
		} else {
			fmt.Println("Data (raw):", resp.Data)
		}
	}
}

// --- Command Definitions ---

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check if pomo is running",
	Run: func(cmd *cobra.Command, args []string) {
		sendCommand(ipc.Command{Name: ipc.CmdPing})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the phase, remaining time and durations",
	Run: func(cmd *cobra.Command, args []string) {
		sendCommand(ipc.Command{Name: ipc.CmdStatus})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Pause or resume the countdown",
	Run: func(cmd *cobra.Command, args []string) {
		sendCommand(ipc.Command{Name: ipc.CmdToggle})
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Pause and reset to the start of a work phase",
	Run: func(cmd *cobra.Command, args []string) {
		sendCommand(ipc.Command{Name: ipc.CmdStop})
	},
}

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Quit pomo",
	Run: func(cmd *cobra.Command, args []string) {
		sendCommand(ipc.Command{Name: ipc.CmdQuit})
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the work and/or break duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		work, _ := cmd.Flags().GetString("work")
		brk, _ := cmd.Flags().GetString("break")
		if work == "" && brk == "" {
			return fmt.Errorf("at least one of --work or --break is required")
		}
		sendCommand(ipc.Command{
			Name: ipc.CmdSetDurations,
			Args: ipc.SetDurationsArgs{Work: work, Break: brk},
		})
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", config.DefaultSocketPath(), "Path to the pomo control socket (overrides control.socket_path)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the pomo configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log configuration loading to stderr")

	setCmd.Flags().StringP("work", "w", "", "Work duration (e.g., '25m', '1h')")
	setCmd.Flags().StringP("break", "b", "", "Break duration (e.g., '5m')")

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(quitCmd)
	rootCmd.AddCommand(setCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
