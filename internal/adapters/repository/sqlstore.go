package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/okian/bjorlileika/internal/domain/model"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// SQLiteStore persists sessions in a SQLite database. Players, games and
// scores are normalised into their own tables and rewritten on every Put.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and applies the
// schema.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Dates lists the known date keys, newest first.
func (s *SQLiteStore) Dates(ctx context.Context) (_ []string, err error) {
	defer func(start time.Time) { observe("dates", start, err) }(time.Now())
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM sessions ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan session date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Get loads the session for date.
func (s *SQLiteStore) Get(ctx context.Context, date string) (_ model.BjorliGame, err error) {
	defer func(start time.Time) { observe("get", start, err) }(time.Now())
	return s.load(ctx, s.db, date)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) load(ctx context.Context, q querier, date string) (model.BjorliGame, error) {
	g := model.BjorliGame{Date: date, Players: []string{}, Games: []model.Game{}}

	var locked int
	err := q.QueryRowContext(ctx, `SELECT locked FROM sessions WHERE date = ?`, date).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BjorliGame{}, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	if err != nil {
		return model.BjorliGame{}, fmt.Errorf("get session: %w", err)
	}
	g.Locked = locked != 0

	players, err := q.QueryContext(ctx, `SELECT name FROM session_players WHERE date = ? ORDER BY position`, date)
	if err != nil {
		return model.BjorliGame{}, fmt.Errorf("get players: %w", err)
	}
	defer players.Close()
	for players.Next() {
		var name string
		if err := players.Scan(&name); err != nil {
			return model.BjorliGame{}, fmt.Errorf("scan player: %w", err)
		}
		g.Players = append(g.Players, name)
	}
	if err := players.Err(); err != nil {
		return model.BjorliGame{}, fmt.Errorf("get players: %w", err)
	}

	games, err := q.QueryContext(ctx, `SELECT name FROM session_games WHERE date = ? ORDER BY position`, date)
	if err != nil {
		return model.BjorliGame{}, fmt.Errorf("get games: %w", err)
	}
	defer games.Close()
	for games.Next() {
		var name string
		if err := games.Scan(&name); err != nil {
			return model.BjorliGame{}, fmt.Errorf("scan game: %w", err)
		}
		g.Games = append(g.Games, model.Game{Name: name, Scores: map[string]float64{}})
	}
	if err := games.Err(); err != nil {
		return model.BjorliGame{}, fmt.Errorf("get games: %w", err)
	}

	scores, err := q.QueryContext(ctx, `SELECT game_position, player, score FROM game_scores WHERE date = ?`, date)
	if err != nil {
		return model.BjorliGame{}, fmt.Errorf("get scores: %w", err)
	}
	defer scores.Close()
	for scores.Next() {
		var (
			pos    int
			player string
			score  float64
		)
		if err := scores.Scan(&pos, &player, &score); err != nil {
			return model.BjorliGame{}, fmt.Errorf("scan score: %w", err)
		}
		if pos >= 0 && pos < len(g.Games) {
			g.Games[pos].Scores[player] = score
		}
	}
	if err := scores.Err(); err != nil {
		return model.BjorliGame{}, fmt.Errorf("get scores: %w", err)
	}
	return g, nil
}

// Create adds an empty session.
func (s *SQLiteStore) Create(ctx context.Context, date string) (_ model.BjorliGame, err error) {
	defer func(start time.Time) { observe("create", start, err) }(time.Now())
	now := nowUTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (date, locked, created_at, updated_at)
		VALUES (?, 0, ?, ?)
		ON CONFLICT(date) DO NOTHING
	`, date, now, now)
	if err != nil {
		return model.BjorliGame{}, fmt.Errorf("create session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.BjorliGame{}, fmt.Errorf("%w: %s", ErrExists, date)
	}
	return model.BjorliGame{Date: date, Players: []string{}, Games: []model.Game{}}, nil
}

// Put replaces the session inside one transaction.
func (s *SQLiteStore) Put(ctx context.Context, game model.BjorliGame) (err error) {
	defer func(start time.Time) { observe("put", start, err) }(time.Now())
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var locked int
	err = tx.QueryRowContext(ctx, `SELECT locked FROM sessions WHERE date = ?`, game.Date).Scan(&locked)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = nil
	case err != nil:
		return fmt.Errorf("get session: %w", err)
	case locked != 0:
		return fmt.Errorf("%w: %s", ErrLocked, game.Date)
	}

	now := nowUTC()
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (date, locked, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			locked = excluded.locked,
			updated_at = excluded.updated_at
	`, game.Date, boolInt(game.Locked), now, now); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	for _, stmt := range []string{
		`DELETE FROM game_scores WHERE date = ?`,
		`DELETE FROM session_games WHERE date = ?`,
		`DELETE FROM session_players WHERE date = ?`,
	} {
		if _, err = tx.ExecContext(ctx, stmt, game.Date); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}

	for i, p := range game.Players {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_players (date, position, name) VALUES (?, ?, ?)`,
			game.Date, i, p); err != nil {
			return fmt.Errorf("insert player %q: %w", p, err)
		}
	}
	for i, g := range game.Games {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_games (date, position, name) VALUES (?, ?, ?)`,
			game.Date, i, g.Name); err != nil {
			return fmt.Errorf("insert game %q: %w", g.Name, err)
		}
		for player, score := range g.Scores {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO game_scores (date, game_position, player, score) VALUES (?, ?, ?, ?)`,
				game.Date, i, player, score); err != nil {
				return fmt.Errorf("insert score %q/%q: %w", g.Name, player, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	return nil
}

// SetLocked flips the lock flag.
func (s *SQLiteStore) SetLocked(ctx context.Context, date string, locked bool) (err error) {
	defer func(start time.Time) { observe("lock", start, err) }(time.Now())
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET locked = ?, updated_at = ? WHERE date = ?`,
		boolInt(locked), nowUTC(), date)
	if err != nil {
		return fmt.Errorf("lock session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	return nil
}

// Count returns the number of sessions, or 0 when the query fails.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
