package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/okian/bjorlileika/internal/domain/model"
)

const sessionFileExt = ".json"

// JSONStore keeps one pretty-printed <date>.json file per session under
// Root. Writes go to a temp file first and are renamed into place.
type JSONStore struct {
	Root string

	mu sync.RWMutex
}

// NewJSONStore creates root if needed and returns a store on it.
func NewJSONStore(root string) (*JSONStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &JSONStore{Root: root}, nil
}

// Path returns the file that holds date.
func (s *JSONStore) Path(date string) string {
	return filepath.Join(s.Root, date+sessionFileExt)
}

// Dates lists the known date keys, newest first.
func (s *JSONStore) Dates(ctx context.Context) (_ []string, err error) {
	defer func(start time.Time) { observe("dates", start, err) }(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dates()
}

func (s *JSONStore) dates() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("list store dir: %w", err)
	}
	dates := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), sessionFileExt) {
			continue
		}
		dates = append(dates, strings.TrimSuffix(e.Name(), sessionFileExt))
	}
	return sortDates(dates), nil
}

// Get reads the session for date.
func (s *JSONStore) Get(ctx context.Context, date string) (_ model.BjorliGame, err error) {
	defer func(start time.Time) { observe("get", start, err) }(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(date)
}

func (s *JSONStore) read(date string) (model.BjorliGame, error) {
	b, err := os.ReadFile(s.Path(date))
	if errors.Is(err, os.ErrNotExist) {
		return model.BjorliGame{}, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	if err != nil {
		return model.BjorliGame{}, fmt.Errorf("read session: %w", err)
	}
	var g model.BjorliGame
	if err := json.Unmarshal(b, &g); err != nil {
		return model.BjorliGame{}, fmt.Errorf("decode session %s: %w", date, err)
	}
	g.Date = date
	return g.Clone(), nil
}

func (s *JSONStore) write(g model.BjorliGame) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp, err := os.CreateTemp(s.Root, ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(g.Date)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Create writes an empty session file.
func (s *JSONStore) Create(ctx context.Context, date string) (_ model.BjorliGame, err error) {
	defer func(start time.Time) { observe("create", start, err) }(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.Path(date)); err == nil {
		return model.BjorliGame{}, fmt.Errorf("%w: %s", ErrExists, date)
	}
	g := model.BjorliGame{Date: date, Players: []string{}, Games: []model.Game{}}
	if err := s.write(g); err != nil {
		return model.BjorliGame{}, err
	}
	return g, nil
}

// Put replaces the session file.
func (s *JSONStore) Put(ctx context.Context, game model.BjorliGame) (err error) {
	defer func(start time.Time) { observe("put", start, err) }(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.read(game.Date)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return err
	case cur.Locked:
		return fmt.Errorf("%w: %s", ErrLocked, game.Date)
	}
	return s.write(game.Clone())
}

// SetLocked rewrites the session with the new lock flag.
func (s *JSONStore) SetLocked(ctx context.Context, date string, locked bool) (err error) {
	defer func(start time.Time) { observe("lock", start, err) }(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.read(date)
	if err != nil {
		return err
	}
	g.Locked = locked
	return s.write(g)
}

// Count returns the number of session files.
func (s *JSONStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates, err := s.dates()
	if err != nil {
		return 0
	}
	return len(dates)
}

// Close is a no-op.
func (s *JSONStore) Close() error { return nil }
