package scoring

import "errors"

// Sentinel kinds for cell validation.
var (
	ErrNotInteger = errors.New("score must be a whole number")
	ErrOutOfRange = errors.New("score out of range")
)
