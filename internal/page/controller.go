// Package page holds the state of the score sheet page: the known dates,
// the selected date, the grid rows and columns. It drives the grid and the
// API in response to user actions.
package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/bjorlileika/internal/domain/grid"
	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/internal/domain/scoring"
	"github.com/okian/bjorlileika/pkg/logger"
)

// State is the lifecycle position of the page.
type State int

// Page states, in the order a session normally moves through them.
const (
	Idle State = iota
	DatesLoaded
	DateSelected
	DataLoaded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DatesLoaded:
		return "dates_loaded"
	case DateSelected:
		return "date_selected"
	case DataLoaded:
		return "data_loaded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// API is the server boundary.
type API interface {
	GetDates(ctx context.Context) ([]string, error)
	// GetDateData returns nil when the date has no data.
	GetDateData(ctx context.Context, date string) (*model.DateData, error)
	SendGame(ctx context.Context, game model.BjorliGame) (model.SubmitResult, error)
}

// Prompter asks for a line of text. ok is false when the user cancels.
type Prompter interface {
	Prompt(msg string) (answer string, ok bool)
}

// Notifier shows a blocking message.
type Notifier interface {
	Alert(msg string)
}

// Grid is the rendered table. Rows must include edits that are still open
// once StopEditing has returned.
type Grid interface {
	SetColumns(cols []grid.Column)
	SetRows(rows []model.PlayerRow)
	StopEditing()
	Rows() []model.PlayerRow
}

// Controller owns the page state. It is not safe for concurrent use; the
// page handles one event at a time.
type Controller struct {
	api      API
	prompter Prompter
	notifier Notifier
	grid     Grid
	synced   bool
	logger   logger.Logger

	state        State
	dates        []string
	selectedDate string
	rows         []model.PlayerRow
	columns      []grid.Column
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failed calls.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller in the Idle state.
func New(api API, prompter Prompter, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{api: api, prompter: prompter, notifier: notifier}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("page")
	}
	return c
}

// OnGridReady attaches the grid and pushes the current columns and rows.
func (c *Controller) OnGridReady(g Grid) {
	c.grid = g
	c.synced = false
	if g == nil {
		return
	}
	c.pushColumns()
	c.pushRows()
}

// Mount loads the dates and selects the first one.
func (c *Controller) Mount(ctx context.Context) {
	dates, err := c.api.GetDates(ctx)
	if err != nil {
		c.logger.Error(ctx, "fetch dates failed", logger.Error(err))
		return
	}
	c.dates = append([]string(nil), dates...)
	c.state = DatesLoaded
	if len(c.dates) > 0 {
		c.SelectDate(ctx, c.dates[0])
	}
}

// SelectDate makes date current and loads its players and games. On a
// failed or empty fetch the rows and columns are left as they were.
func (c *Controller) SelectDate(ctx context.Context, date string) {
	c.selectedDate = date
	c.state = DateSelected

	data, err := c.api.GetDateData(ctx, date)
	if err != nil {
		c.logger.Error(ctx, "fetch date data failed", logger.String("date", date), logger.Error(err))
		return
	}
	if data == nil {
		c.logger.Warn(ctx, "no data for date", logger.String("date", date))
		return
	}

	grid.ConstructColumnsFromGames(data.Games, func(cols []grid.Column) {
		c.columns = cols
	})
	c.rows = grid.Rows(data.Players, data.Games)
	c.state = DataLoaded
	c.pushColumns()
	c.pushRows()
}

// AddNewPlayer asks for a name and appends an empty row.
func (c *Controller) AddNewPlayer() {
	name, ok := c.prompter.Prompt(PromptPlayerName)
	if !ok {
		return
	}
	if strings.TrimSpace(name) == "" {
		c.notifier.Alert(AlertBlankPlayer)
		return
	}
	c.pullRows()
	c.rows = append(c.rows, grid.CreatePlayerRow(name, nil))
	c.pushRows()
}

// AddNewGame asks for a name, appends a game column and sets the new cell
// to 0 on every existing row.
func (c *Controller) AddNewGame() {
	name, ok := c.prompter.Prompt(PromptGameName)
	if !ok {
		return
	}
	if strings.TrimSpace(name) == "" {
		c.notifier.Alert(AlertBlankGame)
		return
	}
	if grid.HasField(c.columns, name) || model.IsReservedField(name) {
		c.notifier.Alert(AlertDuplicateGame)
		return
	}

	c.pullRows()
	c.columns = append(c.columns, grid.NewGameColumn(name))
	for i := range c.rows {
		c.rows[i].Set(name, 0)
		c.rows[i].Total = grid.ComputeTotal(c.rows[i])
	}
	c.pushColumns()
	c.pushRows()
}

// SetScore is the cell editor: it stores a whole score between 1 and 9
// for an existing player and game.
func (c *Controller) SetScore(player, game string, value float64) error {
	if err := c.CheckScore(player, game, value); err != nil {
		return err
	}
	for i := range c.rows {
		if c.rows[i].PlayerName == player {
			c.rows[i].Set(game, value)
			c.rows[i].Total = grid.ComputeTotal(c.rows[i])
			break
		}
	}
	c.pushRows()
	return nil
}

// CheckScore reports whether SetScore would accept the edit, without
// making it. Grid editors use it before opening a cell.
func (c *Controller) CheckScore(player, game string, value float64) error {
	if err := scoring.ValidateCell(value); err != nil {
		return err
	}
	if grid.IsPseudoField(game) || !grid.HasField(c.columns, game) {
		return fmt.Errorf("%w: %q", ErrUnknownGame, game)
	}
	c.pullRows()
	for _, r := range c.rows {
		if r.PlayerName == player {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
}

// SendDataToAPI rebuilds the session from the grid and submits it.
func (c *Controller) SendDataToAPI(ctx context.Context) {
	if c.grid == nil || c.selectedDate == "" {
		c.notifier.Alert(AlertNotReady)
		return
	}
	c.grid.StopEditing()
	rows := c.grid.Rows()

	players := make([]string, 0, len(rows))
	for _, r := range rows {
		players = append(players, r.PlayerName)
	}
	game := model.BjorliGame{
		Date:    c.selectedDate,
		Locked:  false,
		Games:   grid.ConvertRowDataToGame(rows, grid.GameFields(c.columns)),
		Players: players,
	}

	res, err := c.api.SendGame(ctx, game)
	if err != nil {
		c.logger.Error(ctx, "send game failed", logger.String("date", game.Date), logger.Error(err))
		c.notifier.Alert(AlertSendFailed)
		return
	}
	if !res.OK() {
		c.logger.Warn(ctx, "send game rejected",
			logger.String("date", game.Date),
			logger.String("status", res.Status),
			logger.String("message", res.Message),
		)
		c.notifier.Alert(AlertSendFailed)
		return
	}
	c.notifier.Alert(AlertSendOK)
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Dates returns the known dates, newest first.
func (c *Controller) Dates() []string { return append([]string(nil), c.dates...) }

// SelectedDate returns the current date, or "" before one is chosen.
func (c *Controller) SelectedDate() string { return c.selectedDate }

// Rows returns a copy of the current rows.
func (c *Controller) Rows() []model.PlayerRow {
	c.pullRows()
	out := make([]model.PlayerRow, len(c.rows))
	for i, r := range c.rows {
		out[i] = r.Clone()
	}
	return out
}

// Columns returns a copy of the current column definitions.
func (c *Controller) Columns() []grid.Column {
	return append([]grid.Column(nil), c.columns...)
}

// pullRows adopts the grid's committed rows, which carry edits made in
// the grid since the last push.
func (c *Controller) pullRows() {
	if c.grid != nil && c.synced {
		c.rows = c.grid.Rows()
	}
}

func (c *Controller) pushRows() {
	if c.grid != nil {
		c.grid.SetRows(c.rows)
		c.synced = true
	}
}

func (c *Controller) pushColumns() {
	if c.grid != nil {
		c.grid.SetColumns(c.columns)
	}
}
