// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	repository "github.com/okian/bjorlileika/internal/adapters/repository"
	"github.com/okian/bjorlileika/internal/config"
	"github.com/okian/bjorlileika/internal/domain/grid"
	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/pkg/logger"
	"github.com/okian/bjorlileika/pkg/metrics"
)

// Submission outcomes recorded in metrics.
const (
	outcomeAccepted = "accepted"
	outcomeLocked   = "locked"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// Service implements the API dependencies for the score sheet.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	storeDriver string
	storePath   string
	seedDates   []string

	// State
	started   bool
	ownsStore bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a ready store. The service does not close it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStoreDriver selects the store opened on Start.
func WithStoreDriver(driver, path string) Option {
	return func(s *Service) {
		if driver != "" {
			s.storeDriver = driver
			s.storePath = path
		}
	}
}

// WithSeedDates lists dates created on Start when missing.
func WithSeedDates(dates ...string) Option {
	return func(s *Service) {
		s.seedDates = append(s.seedDates, dates...)
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeDriver: config.StoreMemory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the store and creates the seed dates.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting score sheet service...")

	if s.store == nil {
		store, err := repository.Open(ctx, s.storeDriver, s.storePath)
		if err != nil {
			return fmt.Errorf("open %s store: %w", s.storeDriver, err)
		}
		s.store = store
		s.ownsStore = true
	}

	for _, date := range s.seedDates {
		if err := model.ValidateDate(date); err != nil {
			return fmt.Errorf("seed date: %w", err)
		}
		_, err := s.store.Create(ctx, date)
		switch {
		case errors.Is(err, repository.ErrExists):
		case err != nil:
			return fmt.Errorf("seed date %s: %w", date, err)
		default:
			metrics.RecordSessionCreated()
			s.logger.Info(ctx, "seeded session", logger.String("date", date))
		}
	}

	count := s.store.Count(ctx)
	metrics.UpdateSessionCount(count)

	s.started = true
	s.logger.Info(ctx, "score sheet service started",
		logger.String("store", s.storeDriver),
		logger.Int("sessions", count),
	)
	return nil
}

// Stop closes a store opened by Start.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.ownsStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(context.Background(), "close store failed", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "score sheet service stopped")
}

func (s *Service) ready() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Dates lists the session dates, newest first.
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.Dates(ctx)
}

// DateData returns the players and games of one date.
func (s *Service) DateData(ctx context.Context, date string) (model.DateData, error) {
	store, err := s.ready()
	if err != nil {
		return model.DateData{}, err
	}
	g, err := store.Get(ctx, date)
	if err != nil {
		return model.DateData{}, err
	}
	return g.DateData(), nil
}

// CreateDate adds an empty session for date.
func (s *Service) CreateDate(ctx context.Context, date string) (model.BjorliGame, error) {
	store, err := s.ready()
	if err != nil {
		return model.BjorliGame{}, err
	}
	date = strings.TrimSpace(date)
	if err := model.ValidateDate(date); err != nil {
		return model.BjorliGame{}, err
	}
	g, err := store.Create(ctx, date)
	if err != nil {
		return model.BjorliGame{}, err
	}
	metrics.RecordSessionCreated()
	metrics.UpdateSessionCount(store.Count(ctx))
	s.logger.Info(ctx, "session created", logger.String("date", date))
	return g, nil
}

// SubmitGame replaces the session with game after validating it.
func (s *Service) SubmitGame(ctx context.Context, game model.BjorliGame) error {
	store, err := s.ready()
	if err != nil {
		return err
	}
	if err := game.Validate(); err != nil {
		metrics.RecordSubmission(outcomeInvalid)
		s.logger.Warn(ctx, "rejected invalid submission", logger.String("date", game.Date), logger.Error(err))
		return err
	}
	if err := store.Put(ctx, game); err != nil {
		if errors.Is(err, repository.ErrLocked) {
			metrics.RecordSubmission(outcomeLocked)
			s.logger.Warn(ctx, "rejected submission to locked session", logger.String("date", game.Date))
			return err
		}
		metrics.RecordSubmission(outcomeError)
		s.logger.Error(ctx, "store submission failed", logger.String("date", game.Date), logger.Error(err))
		return err
	}
	metrics.RecordSubmission(outcomeAccepted)
	metrics.RecordSubmissionShape(len(game.Players), len(game.Games))
	metrics.UpdateSessionCount(store.Count(ctx))
	s.logger.Info(ctx, "submission stored",
		logger.String("date", game.Date),
		logger.Int("players", len(game.Players)),
		logger.Int("games", len(game.Games)),
		logger.Bool("locked", game.Locked),
	)
	return nil
}

// SetLocked locks or unlocks a session.
func (s *Service) SetLocked(ctx context.Context, date string, locked bool) error {
	store, err := s.ready()
	if err != nil {
		return err
	}
	if err := store.SetLocked(ctx, date, locked); err != nil {
		return err
	}
	s.logger.Info(ctx, "session lock changed", logger.String("date", date), logger.Bool("locked", locked))
	return nil
}

// Standings ranks the players of a date by ascending total.
func (s *Service) Standings(ctx context.Context, date string) ([]model.Standing, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	g, err := store.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	metrics.RecordStandingsRequest()
	return grid.Standings(grid.Rows(g.Players, g.Games)), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"store":   s.storeDriver,
	}
	if s.started && s.store != nil {
		count := s.store.Count(context.Background())
		stats["sessions"] = count
		metrics.UpdateSessionCount(count)
	}
	return stats
}
