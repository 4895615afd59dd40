// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"maps"
)

// Reserved grid fields. They are never valid game names.
const (
	FieldPlayerName = "playerName"
	FieldTotal      = "total"
)

// Game is one mini-game of a session with the scores entered so far.
// A player missing from Scores has not been scored yet.
type Game struct {
	Name   string             `json:"name"`
	Scores map[string]float64 `json:"scores"`
}

// UnmarshalJSON treats a null score as not entered.
func (g *Game) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string              `json:"name"`
		Scores map[string]*float64 `json:"scores"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Game{Name: raw.Name, Scores: make(map[string]float64, len(raw.Scores))}
	for player, v := range raw.Scores {
		if v != nil {
			out.Scores[player] = *v
		}
	}
	*g = out
	return nil
}

// Score returns the player's score and whether one was entered.
func (g Game) Score(player string) (float64, bool) {
	v, ok := g.Scores[player]
	return v, ok
}

// BjorliGame is the full scoring session for one calendar date.
type BjorliGame struct {
	Date    string   `json:"date"`
	Locked  bool     `json:"locked"`
	Games   []Game   `json:"games"`
	Players []string `json:"players"`
}

// DateData returns the read shape of the session.
func (b BjorliGame) DateData() DateData {
	c := b.Clone()
	return DateData{Players: c.Players, Games: c.Games}
}

// Clone returns a deep copy so callers can't mutate stored state.
func (b BjorliGame) Clone() BjorliGame {
	out := BjorliGame{Date: b.Date, Locked: b.Locked}
	out.Players = append([]string{}, b.Players...)
	out.Games = make([]Game, len(b.Games))
	for i, g := range b.Games {
		out.Games[i] = Game{Name: g.Name, Scores: maps.Clone(g.Scores)}
		if out.Games[i].Scores == nil {
			out.Games[i].Scores = map[string]float64{}
		}
	}
	return out
}

// DateData is what the sheet page loads for a date.
type DateData struct {
	Players []string `json:"players"`
	Games   []Game   `json:"games"`
}

// Standing is one ranked line of the standings for a date.
type Standing struct {
	Rank       int     `json:"rank"`
	PlayerName string  `json:"player_name"`
	Total      float64 `json:"total"`
}

// SubmitResult is the server's answer to a submission. Anything but
// "success" is a failure.
type SubmitResult struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatusSuccess is the status of a stored submission.
const StatusSuccess = "success"

// OK reports whether the submission was stored.
func (r SubmitResult) OK() bool { return r.Status == StatusSuccess }
