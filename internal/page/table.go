package page

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/bjorlileika/internal/domain/grid"
	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/internal/domain/scoring"
)

type pendingEdit struct {
	player string
	game   string
	value  float64
}

// Table is a text-mode Grid. A staged edit is the open cell editor: it is
// invisible to Rows until StopEditing commits it.
type Table struct {
	columns []grid.Column
	rows    []model.PlayerRow
	pending *pendingEdit
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// SetColumns replaces the column definitions.
func (t *Table) SetColumns(cols []grid.Column) {
	t.columns = append([]grid.Column(nil), cols...)
}

// SetRows replaces the row data and drops any open edit. Rows are copied.
func (t *Table) SetRows(rows []model.PlayerRow) {
	t.pending = nil
	t.rows = make([]model.PlayerRow, len(rows))
	for i, r := range rows {
		t.rows[i] = r.Clone()
	}
}

// Stage opens an edit of one cell. A second Stage replaces the first.
func (t *Table) Stage(player, game string, value float64) error {
	if err := scoring.ValidateCell(value); err != nil {
		return err
	}
	t.pending = &pendingEdit{player: player, game: game, value: value}
	return nil
}

// Editing reports whether a cell edit is open.
func (t *Table) Editing() bool { return t.pending != nil }

// StopEditing commits the staged edit, if any. An edit for a row that no
// longer exists is dropped.
func (t *Table) StopEditing() {
	e := t.pending
	t.pending = nil
	if e == nil {
		return
	}
	for i := range t.rows {
		if t.rows[i].PlayerName == e.player {
			t.rows[i].Set(e.game, e.value)
			t.rows[i].Total = grid.ComputeTotal(t.rows[i])
			return
		}
	}
}

// Rows returns a copy of the committed rows in insertion order.
func (t *Table) Rows() []model.PlayerRow {
	out := make([]model.PlayerRow, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Render writes the table sorted by ascending total, the grid's default
// view. Undefined cells are blank.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	cols := t.ordered()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.HeaderName
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	rows := t.Rows()
	grid.SortByTotal(rows)
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = formatCell(c.Value(r))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

// ordered keeps pinned columns last, as the grid shows them.
func (t *Table) ordered() []grid.Column {
	out := make([]grid.Column, 0, len(t.columns))
	var pinned []grid.Column
	for _, c := range t.columns {
		if c.Pinned != "" {
			pinned = append(pinned, c)
			continue
		}
		out = append(out, c)
	}
	return append(out, pinned...)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
