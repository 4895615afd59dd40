package model

import (
	"encoding/json"
	"fmt"
	"maps"
)

// PlayerRow is the grid-facing view of one player. Scores holds a value for
// every game field present on the row; a missing key is an undefined cell.
// Total is derived from Scores and is never read from the wire.
type PlayerRow struct {
	PlayerName string
	Scores     map[string]float64
	Total      float64
}

// Value returns the cell for a game and whether the row carries it.
func (r PlayerRow) Value(game string) (float64, bool) {
	v, ok := r.Scores[game]
	return v, ok
}

// Set stores a cell value, allocating Scores when needed.
func (r *PlayerRow) Set(game string, v float64) {
	if r.Scores == nil {
		r.Scores = make(map[string]float64)
	}
	r.Scores[game] = v
}

// Clone returns a deep copy of the row.
func (r PlayerRow) Clone() PlayerRow {
	return PlayerRow{PlayerName: r.PlayerName, Scores: maps.Clone(r.Scores), Total: r.Total}
}

// MarshalJSON renders the flat grid shape:
// {"playerName": "Ola", "Darts": 3, "total": 3}.
func (r PlayerRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Scores)+2)
	for k, v := range r.Scores {
		flat[k] = v
	}
	flat[FieldPlayerName] = r.PlayerName
	flat[FieldTotal] = r.Total
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat grid shape. Null cells stay undefined and the
// incoming total is ignored; callers re-derive it.
func (r *PlayerRow) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	row := PlayerRow{Scores: make(map[string]float64, len(flat))}
	for k, raw := range flat {
		switch k {
		case FieldTotal:
			continue
		case FieldPlayerName:
			if err := json.Unmarshal(raw, &row.PlayerName); err != nil {
				return fmt.Errorf("playerName: %w", err)
			}
		default:
			var v *float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("field %q: %w", k, err)
			}
			if v != nil {
				row.Scores[k] = *v
			}
		}
	}
	*r = row
	return nil
}
