package service

import "errors"

// ErrNotStarted is returned by every operation before Start.
var ErrNotStarted = errors.New("service not started")
