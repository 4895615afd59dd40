// Package grid converts between the wire shape of a session (games with
// per-player score maps) and the grid shape (one row per player with a cell
// per game), and derives column metadata and totals.
package grid

import (
	"cmp"
	"slices"

	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/internal/domain/scoring"
)

// CreatePlayerRow builds the row for player from the ordered games. A game
// without a score for the player leaves the cell undefined. When two games
// share a name the later one wins, and the total follows the cells that
// remain on the row.
func CreatePlayerRow(player string, games []model.Game) model.PlayerRow {
	row := model.PlayerRow{PlayerName: player, Scores: make(map[string]float64, len(games))}
	for _, g := range games {
		v, ok := g.Score(player)
		if !ok {
			delete(row.Scores, g.Name)
			continue
		}
		row.Scores[g.Name] = v
	}
	row.Total = ComputeTotal(row)
	return row
}

// Rows builds one row per player, in player order.
func Rows(players []string, games []model.Game) []model.PlayerRow {
	rows := make([]model.PlayerRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, CreatePlayerRow(p, games))
	}
	return rows
}

// ComputeTotal multiplies every contributing game cell on the row.
func ComputeTotal(row model.PlayerRow) float64 {
	values := make([]float64, 0, len(row.Scores))
	for field, v := range row.Scores {
		if IsPseudoField(field) {
			continue
		}
		values = append(values, v)
	}
	return scoring.Product(values...)
}

// ConvertRowDataToGame is the inverse of Rows: for each game name it
// collects every row's cell into a score map keyed by player name. Rows
// without a value for the game are left out of its map.
func ConvertRowDataToGame(rows []model.PlayerRow, gameNames []string) []model.Game {
	games := make([]model.Game, 0, len(gameNames))
	for _, name := range gameNames {
		scores := make(map[string]float64, len(rows))
		for _, row := range rows {
			if v, ok := row.Value(name); ok {
				scores[row.PlayerName] = v
			}
		}
		games = append(games, model.Game{Name: name, Scores: scores})
	}
	return games
}

// SortByTotal orders rows by ascending total, the grid's default sort.
// Rows with equal totals keep their relative order.
func SortByTotal(rows []model.PlayerRow) {
	slices.SortStableFunc(rows, func(a, b model.PlayerRow) int {
		return cmp.Compare(ComputeTotal(a), ComputeTotal(b))
	})
}

// Standings ranks rows by ascending total. Equal totals share a rank and
// are listed by player name.
func Standings(rows []model.PlayerRow) []model.Standing {
	out := make([]model.Standing, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Standing{PlayerName: r.PlayerName, Total: ComputeTotal(r)})
	}
	slices.SortFunc(out, func(a, b model.Standing) int {
		if c := cmp.Compare(a.Total, b.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerName, b.PlayerName)
	})
	for i := range out {
		if i > 0 && out[i].Total == out[i-1].Total {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
