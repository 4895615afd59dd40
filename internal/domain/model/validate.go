package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the format of session date keys.
const DateLayout = "2006-01-02"

// ErrInvalidSession marks a BjorliGame that breaks a session invariant.
var ErrInvalidSession = errors.New("invalid session")

// ValidateDate checks that date is a calendar date key (YYYY-MM-DD).
func ValidateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidSession)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidSession, date)
	}
	return nil
}

// IsReservedField reports whether name collides with a pseudo column.
func IsReservedField(name string) bool {
	return name == FieldPlayerName || name == FieldTotal
}

// Validate checks the invariants a stored session must hold. Duplicate game
// names are accepted; the last one wins when rows are built.
func (b BjorliGame) Validate() error {
	if err := ValidateDate(b.Date); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(b.Players))
	for _, p := range b.Players {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: blank player name", ErrInvalidSession)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: duplicate player %q", ErrInvalidSession, p)
		}
		seen[p] = struct{}{}
	}
	for _, g := range b.Games {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: blank game name", ErrInvalidSession)
		}
		if IsReservedField(g.Name) {
			return fmt.Errorf("%w: game name %q is reserved", ErrInvalidSession, g.Name)
		}
		for player, v := range g.Scores {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: game %q has invalid score %v for %q", ErrInvalidSession, g.Name, v, player)
			}
		}
	}
	return nil
}
