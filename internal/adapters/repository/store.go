// Package repository defines the session store interface and its backends.
package repository

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/pkg/metrics"
)

// Store persists one BjorliGame per date. Sessions are replaced wholesale;
// there are no partial-field updates.
type Store interface {
	// Dates lists the known date keys, newest first.
	Dates(ctx context.Context) ([]string, error)

	// Get returns the session for date or ErrNotFound.
	Get(ctx context.Context, date string) (model.BjorliGame, error)

	// Create adds an empty, unlocked session. Returns ErrExists when the
	// date is already known.
	Create(ctx context.Context, date string) (model.BjorliGame, error)

	// Put replaces the session for game.Date, creating it when missing.
	// Returns ErrLocked when the stored session is locked.
	Put(ctx context.Context, game model.BjorliGame) error

	// SetLocked flips the lock flag of an existing session.
	SetLocked(ctx context.Context, date string, locked bool) error

	// Count returns the number of sessions.
	Count(ctx context.Context) int

	// Close releases backend resources.
	Close() error
}

// sortDates orders date keys newest first. YYYY-MM-DD sorts lexically.
func sortDates(dates []string) []string {
	slices.SortFunc(dates, func(a, b string) int { return strings.Compare(b, a) })
	return dates
}

// observe records latency and, on failure, an error for a store operation.
func observe(op string, start time.Time, err error) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordStoreError(op)
	}
}
