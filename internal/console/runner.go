// Package console runs the score sheet page in a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/bjorlileika/internal/adapters/http/client"
	"github.com/okian/bjorlileika/internal/page"
	"github.com/okian/bjorlileika/pkg/logger"
)

// Run mounts the page against cfg.BaseURL and executes commands read
// from in until quit or end of input.
func Run(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) error {
	api := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger.Named("client")),
	)
	return NewRunner(api, in, out).Run(ctx, cfg.Date)
}

// Runner binds a page controller to a terminal.
type Runner struct {
	io    *LineIO
	out   io.Writer
	ctrl  *page.Controller
	table *page.Table
}

// NewRunner creates a runner over api.
func NewRunner(api page.API, in io.Reader, out io.Writer) *Runner {
	lio := NewLineIO(in, out)
	r := &Runner{
		io:    lio,
		out:   out,
		ctrl:  page.New(api, lio, lio, page.WithLogger(logger.Named("page"))),
		table: page.NewTable(),
	}
	r.ctrl.OnGridReady(r.table)
	return r
}

// Controller exposes the page state.
func (r *Runner) Controller() *page.Controller { return r.ctrl }

// Run mounts the page, optionally switches to date, then loops over
// commands.
func (r *Runner) Run(ctx context.Context, date string) error {
	r.ctrl.Mount(ctx)
	if r.ctrl.State() == page.Idle {
		fmt.Fprintln(r.out, "! could not load dates; see the log")
	}
	if date != "" && date != r.ctrl.SelectedDate() {
		r.ctrl.SelectDate(ctx, date)
	}
	r.status()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, "> ")
		line, ok := r.io.ReadLine()
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		if quit := r.Exec(ctx, line); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the user asked to quit.
// set opens a cell edit; the next command that reads or changes rows
// commits it, and select drops it along with the old rows.
func (r *Runner) Exec(ctx context.Context, line string) bool {
	args, err := splitArgs(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(r.out, "! "+err.Error())
		return false
	}
	if len(args) == 0 {
		return false
	}

	switch cmd := strings.ToLower(args[0]); cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		ShowCommands(r.out)
	case "dates":
		for _, d := range r.ctrl.Dates() {
			marker := " "
			if d == r.ctrl.SelectedDate() {
				marker = "*"
			}
			fmt.Fprintf(r.out, "%s %s\n", marker, d)
		}
	case "select":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: select <date>")
			return false
		}
		r.ctrl.SelectDate(ctx, args[1])
		r.status()
	case "player":
		r.table.StopEditing()
		r.ctrl.AddNewPlayer()
	case "game":
		r.table.StopEditing()
		r.ctrl.AddNewGame()
	case "set":
		r.table.StopEditing()
		r.set(args[1:])
	case "show":
		r.table.StopEditing()
		if err := r.table.Render(r.out); err != nil {
			fmt.Fprintln(r.out, "! "+err.Error())
		}
	case "send":
		// SendDataToAPI closes the open edit itself.
		r.ctrl.SendDataToAPI(ctx)
	default:
		fmt.Fprintf(r.out, "unknown command %q; try help\n", cmd)
	}
	return false
}

func (r *Runner) set(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(r.out, "usage: set <player> <game> <score>")
		return
	}
	v, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(r.out, "! not a number: %q\n", args[2])
		return
	}
	if err := r.ctrl.CheckScore(args[0], args[1], v); err != nil {
		fmt.Fprintln(r.out, "! "+err.Error())
		return
	}
	if err := r.table.Stage(args[0], args[1], v); err != nil {
		fmt.Fprintln(r.out, "! "+err.Error())
	}
}

func (r *Runner) status() {
	switch r.ctrl.State() {
	case page.DataLoaded:
		fmt.Fprintf(r.out, "%s: %d players\n", r.ctrl.SelectedDate(), len(r.ctrl.Rows()))
	case page.DateSelected:
		fmt.Fprintf(r.out, "%s: no data\n", r.ctrl.SelectedDate())
	case page.DatesLoaded:
		fmt.Fprintln(r.out, "no dates yet")
	}
}
