package page

import "errors"

// Sentinel errors for cell edits.
var (
	ErrUnknownPlayer = errors.New("unknown player")
	ErrUnknownGame   = errors.New("unknown game")
)
