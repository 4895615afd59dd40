package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/bjorlileika/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging sends logs to a file so they do not interleave with the
// sheet. If logFile is empty, a timestamped filename is generated. The
// returned func closes the file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	if logFile == "" {
		logFile = "sheet_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	var w io.Writer = file
	if verbose {
		w = io.MultiWriter(os.Stderr, file)
	}
	if err := logger.InitWithWriter(w); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file.Close, nil
}

// ShowHelp prints usage information for the sheet tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Bjørlileika score sheet
=======================

A terminal score sheet for the Bjørlileika server.

Usage:
  go run ./cmd/sheet [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -date string
        Date to open (default: the newest date)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file (default: sheet_TIMESTAMP.log)
  -verbose
        Mirror debug logs to stderr
  -help
        Show this help message
`)
	ShowCommands(w)
}

// ShowCommands prints the interactive commands.
func ShowCommands(w io.Writer) {
	_, _ = io.WriteString(w, `
Commands:
  dates                        List dates
  select <date>                Open a date
  player                       Add a player
  game                         Add a game
  set <player> <game> <score>  Edit a score (1-9), kept by the next command;
                               quote names with spaces
  show                         Print the sheet, lowest total first
  send                         Send the sheet to the server
  help                         Show this list
  quit                         Leave

Answer a prompt with a single "-" to cancel it.
`)
}
