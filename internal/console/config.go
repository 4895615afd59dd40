package console

import "time"

// Config holds configuration for the sheet CLI.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	Date    string        // Date to select after mount; empty picks the newest
	LogFile string        // Log file for diagnostics
	Verbose bool          // Mirror logs to stderr at debug level
}
