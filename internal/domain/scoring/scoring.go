// Package scoring holds the arithmetic of a player's total: the product of
// every entered score, where unplayed games contribute nothing.
package scoring

import (
	"fmt"
	"math"
)

// Editor constraints for a game cell.
const (
	MinScore = 1
	MaxScore = 9
)

// Identity is the total of a player with no contributing scores.
const Identity = 1.0

// Contributes reports whether a cell value takes part in the product.
// Zero is treated as "not played yet", like an empty cell.
func Contributes(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

// Accumulate multiplies v into total when it contributes.
func Accumulate(total, v float64) float64 {
	if Contributes(v) {
		return total * v
	}
	return total
}

// Product multiplies every contributing value, starting from Identity.
func Product(values ...float64) float64 {
	total := Identity
	for _, v := range values {
		total = Accumulate(total, v)
	}
	return total
}

// ValidateCell checks a value typed into a game cell: an integer in
// [MinScore, MaxScore].
func ValidateCell(v float64) error {
	if math.IsNaN(v) || v != math.Trunc(v) {
		return fmt.Errorf("%w: %v", ErrNotInteger, v)
	}
	if v < MinScore || v > MaxScore {
		return fmt.Errorf("%w: %v not in [%d, %d]", ErrOutOfRange, v, MinScore, MaxScore)
	}
	return nil
}
