package api

import (
	"context"
	"net/http"

	"github.com/okian/bjorlileika/internal/domain/model"
)

// GameDependencies defines the submission path.
type GameDependencies interface {
	SubmitGame(ctx context.Context, game model.BjorliGame) error
}

// GamesHandler handles game submissions.
type GamesHandler struct {
	deps GameDependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

// HandlePostGame handles POST /api/games. The body replaces the stored
// session for its date.
func (h *GamesHandler) HandlePostGame(w http.ResponseWriter, r *http.Request) {
	var game model.BjorliGame
	if err := decodeBody(w, r, "api.post_game", &game); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.deps.SubmitGame(r.Context(), game); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SubmitResult{Status: statusSuccess})
}
