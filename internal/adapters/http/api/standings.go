package api

import (
	"context"
	"net/http"

	"github.com/okian/bjorlileika/internal/domain/model"
)

// StandingsDependencies defines the interface for ranked totals.
type StandingsDependencies interface {
	Standings(ctx context.Context, date string) ([]model.Standing, error)
}

// StandingsHandler handles standings requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleGetStandings handles GET /api/dates/{date}/standings.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "api.get_standings")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	st, err := h.deps.Standings(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if st == nil {
		st = []model.Standing{}
	}
	writeJSON(w, http.StatusOK, st)
}
