package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/bjorlileika/internal/console"
)

const defaultTimeout = 10 * time.Second

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		date    = flag.String("date", "", "Date to open (default: the newest date)")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Log file (default: sheet_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Mirror debug logs to stderr")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		console.ShowHelp(os.Stdout)
		return
	}

	closeLog, err := console.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &console.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
		Date:    *date,
		LogFile: *logFile,
		Verbose: *verbose,
	}
	if err := console.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		os.Stderr.WriteString("sheet failed: " + err.Error() + "\n")
	}
}
