package grid

import (
	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/internal/domain/scoring"
)

// Column presentation constants.
const (
	gameColumnWidth   = 110
	numberCellEditor  = "agNumberCellEditor"
	numberCellType    = "number"
	alignRight        = "right"
	playerColumnTitle = "Spiller"
	totalColumnTitle  = "Total"
)

// EditorParams constrain what a cell editor accepts.
type EditorParams struct {
	Min       int `json:"min"`
	Max       int `json:"max"`
	Precision int `json:"precision"`
}

// Column describes one grid column. The total column is Computed: its value
// comes from Value, not from the row's stored Total.
type Column struct {
	HeaderName       string        `json:"headerName"`
	Field            string        `json:"field"`
	Editable         bool          `json:"editable,omitempty"`
	Sortable         bool          `json:"sortable,omitempty"`
	SingleClickEdit  bool          `json:"singleClickEdit,omitempty"`
	AutoHeaderHeight bool          `json:"autoHeaderHeight,omitempty"`
	Width            int           `json:"width,omitempty"`
	Align            string        `json:"align,omitempty"`
	CellEditor       string        `json:"cellEditor,omitempty"`
	CellEditorParams *EditorParams `json:"cellEditorParams,omitempty"`
	CellDataType     string        `json:"cellDataType,omitempty"`
	Sort             string        `json:"sort,omitempty"`
	Pinned           string        `json:"pinned,omitempty"`
	Computed         bool          `json:"computed,omitempty"`
}

// Value renders the column for a row: the name for the player column, the
// live product for the total column, and the cell (nil when undefined) for
// a game column.
func (c Column) Value(row model.PlayerRow) any {
	switch {
	case c.Field == model.FieldPlayerName:
		return row.PlayerName
	case c.Computed:
		return ComputeTotal(row)
	}
	if v, ok := row.Value(c.Field); ok {
		return v
	}
	return nil
}

// IsPseudoField reports whether field is the player or total column.
func IsPseudoField(field string) bool {
	return model.IsReservedField(field)
}

// PlayerColumn is the fixed leading column.
func PlayerColumn() Column {
	return Column{HeaderName: playerColumnTitle, Field: model.FieldPlayerName}
}

// TotalColumn is the trailing computed column, sorted ascending by default.
func TotalColumn() Column {
	return Column{
		HeaderName: totalColumnTitle,
		Field:      model.FieldTotal,
		Sortable:   true,
		Sort:       "asc",
		Pinned:     alignRight,
		Computed:   true,
	}
}

// NewGameColumn builds an editable numeric column for a game.
func NewGameColumn(name string) Column {
	return Column{
		HeaderName:       name,
		Field:            name,
		Editable:         true,
		Sortable:         true,
		SingleClickEdit:  true,
		AutoHeaderHeight: true,
		Width:            gameColumnWidth,
		Align:            alignRight,
		CellEditor:       numberCellEditor,
		CellEditorParams: &EditorParams{Min: scoring.MinScore, Max: scoring.MaxScore, Precision: 0},
		CellDataType:     numberCellType,
	}
}

// Columns returns the player column, one column per game in input order,
// then the total column.
func Columns(games []model.Game) []Column {
	cols := make([]Column, 0, len(games)+2)
	cols = append(cols, PlayerColumn())
	for _, g := range games {
		cols = append(cols, NewGameColumn(g.Name))
	}
	return append(cols, TotalColumn())
}

// ConstructColumnsFromGames derives the column set for games and hands it
// to emit.
func ConstructColumnsFromGames(games []model.Game, emit func([]Column)) {
	if emit == nil {
		return
	}
	emit(Columns(games))
}

// GameFields lists the fields of every non-pseudo column, in order.
func GameFields(cols []Column) []string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if !IsPseudoField(c.Field) {
			names = append(names, c.Field)
		}
	}
	return names
}

// HasField reports whether any column uses field. The match is exact and
// case sensitive.
func HasField(cols []Column, field string) bool {
	for _, c := range cols {
		if c.Field == field {
			return true
		}
	}
	return false
}
