package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("session not found")
	ErrExists   = errors.New("session already exists")
	ErrLocked   = errors.New("session is locked")
	ErrDriver   = errors.New("unknown store driver")
)
