package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/pkg/metrics"
)

// MemoryStore keeps sessions in a map guarded by a RWMutex. Values are
// cloned on the way in and out.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.BjorliGame
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.BjorliGame)}
}

// Dates lists the known date keys, newest first.
func (s *MemoryStore) Dates(ctx context.Context) ([]string, error) {
	defer observe("dates", time.Now(), nil)
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := make([]string, 0, len(s.sessions))
	for d := range s.sessions {
		dates = append(dates, d)
	}
	return sortDates(dates), nil
}

// Get returns the session for date.
func (s *MemoryStore) Get(ctx context.Context, date string) (_ model.BjorliGame, err error) {
	defer func(start time.Time) { observe("get", start, err) }(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.sessions[date]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.BjorliGame{}, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	return g.Clone(), nil
}

// Create adds an empty session.
func (s *MemoryStore) Create(ctx context.Context, date string) (_ model.BjorliGame, err error) {
	defer func(start time.Time) { observe("create", start, err) }(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[date]; ok {
		return model.BjorliGame{}, fmt.Errorf("%w: %s", ErrExists, date)
	}
	g := model.BjorliGame{Date: date, Games: []model.Game{}, Players: []string{}}
	s.sessions[date] = g
	return g.Clone(), nil
}

// Put replaces the session for game.Date.
func (s *MemoryStore) Put(ctx context.Context, game model.BjorliGame) (err error) {
	defer func(start time.Time) { observe("put", start, err) }(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.sessions[game.Date]; ok && cur.Locked {
		return fmt.Errorf("%w: %s", ErrLocked, game.Date)
	}
	s.sessions[game.Date] = game.Clone()
	return nil
}

// SetLocked flips the lock flag.
func (s *MemoryStore) SetLocked(ctx context.Context, date string, locked bool) (err error) {
	defer func(start time.Time) { observe("lock", start, err) }(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.sessions[date]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	g.Locked = locked
	s.sessions[date] = g
	return nil
}

// Count returns the number of sessions.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
