package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"pomo/internal/app"
	"pomo/internal/config"
)

var (
	configPath = flag.String("c", "", "Path to configuration file (e.g., config.yaml). Defaults to ./config.yaml, ~/.config/pomo/config.yaml, /etc/pomo/config.yaml")
	logPath    = flag.String("log", "", "Path to log file (optional, logs are discarded otherwise)")
	demo       = flag.Bool("demo", false, "Use 5 second work and 3 second break phases")

	logFile *os.File
	exit    = os.Exit
)

// setupLogging configures the log output destination. The terminal belongs
// to the UI, so without a log file nothing is written.
func setupLogging(logFilePath string) (*os.File, error) {
	if logFilePath == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	dir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
	}

	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Printf("Logging to file: %s", logFilePath)
	return file, nil
}

// fatalf reports msg in the log and on stderr, then exits. Deferred calls
// do not run, so the log file is closed here.
func fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	closeLog()
	fmt.Fprintln(os.Stderr, msg)
	exit(1)
}

func closeLog() {
	if logFile == nil {
		return
	}
	log.SetOutput(io.Discard)
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
	}
	logFile = nil
}

func main() {
	flag.Parse()

	var err error
	logFile, err = setupLogging(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up file logging: %v. Logging disabled.\n", err)
		log.SetOutput(io.Discard)
	}
	defer closeLog()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if *demo {
		cfg.Demo()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatalf("FATAL: Failed to open terminal: %v", err)
	}

	application := app.NewApp(cfg, screen)

	// Run blocks until the timer quits and restores the terminal itself.
	if err := application.Run(); err != nil {
		fatalf("FATAL: Application exited with error: %v", err)
	}

	log.Println("pomo finished successfully.")
}
