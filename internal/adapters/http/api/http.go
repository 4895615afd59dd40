// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/bjorlileika/internal/adapters/repository"
	"github.com/okian/bjorlileika/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DateDependencies
	GameDependencies
	StandingsDependencies
}

// Response status values understood by the sheet page.
const (
	statusSuccess = model.StatusSuccess
	statusError   = "error"
	statusLocked  = "locked"
)

// maxBodyBytes caps request bodies. A full session is a few KB.
const maxBodyBytes = 1 << 20

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	datesHandler     *DatesHandler
	gamesHandler     *GamesHandler
	standingsHandler *StandingsHandler
	qrHandler        *QRHandler
}

// Option configures the Server.
type Option func(*serverOptions)

type serverOptions struct {
	publicURL string
	qrSize    int
}

// WithPublicURL sets the base URL encoded into share QR codes.
func WithPublicURL(u string) Option {
	return func(o *serverOptions) {
		if u != "" {
			o.publicURL = u
		}
	}
}

// WithQRSize sets the QR code edge length in pixels.
func WithQRSize(px int) Option {
	return func(o *serverOptions) {
		if px > 0 {
			o.qrSize = px
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{publicURL: "http://localhost:9080", qrSize: defaultQRSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		datesHandler:     NewDatesHandler(deps),
		gamesHandler:     NewGamesHandler(deps),
		standingsHandler: NewStandingsHandler(deps),
		qrHandler:        NewQRHandler(deps, o.publicURL, o.qrSize),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /api/dates", MetricsMiddleware(s.datesHandler.HandleListDates, "dates"))
	mux.HandleFunc("POST /api/dates", MetricsMiddleware(s.datesHandler.HandleCreateDate, "dates_create"))
	mux.HandleFunc("GET /api/dates/{date}", MetricsMiddleware(s.datesHandler.HandleGetDate, "date"))
	mux.HandleFunc("PUT /api/dates/{date}/lock", MetricsMiddleware(s.datesHandler.HandleSetLock, "date_lock"))
	mux.HandleFunc("GET /api/dates/{date}/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("GET /api/dates/{date}/qr", MetricsMiddleware(s.qrHandler.HandleGetQR, "qr"))
	mux.HandleFunc("POST /api/games", MetricsMiddleware(s.gamesHandler.HandlePostGame, "games"))
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	st := statusError
	if code == statusLocked {
		st = statusLocked
	}
	writeJSON(w, status, errorResponse{Status: st, Code: code, Message: msg})
}

// writeDomainError maps upstream sentinels to a status code.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrInvalidSession):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrLocked):
		writeError(w, http.StatusConflict, statusLocked, err)
	case errors.Is(err, repository.ErrExists):
		writeError(w, http.StatusConflict, "exists", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// pathDate extracts and checks the {date} path segment.
func pathDate(r *http.Request, op string) (string, error) {
	date := r.PathValue("date")
	if err := model.ValidateDate(date); err != nil {
		return "", WrapKind(op, ErrBadRequest, err)
	}
	return date, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, op string, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
