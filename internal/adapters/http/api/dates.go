package api

import (
	"context"
	"net/http"

	"github.com/okian/bjorlileika/internal/domain/model"
)

// DateDependencies defines the session operations keyed by date.
type DateDependencies interface {
	Dates(ctx context.Context) ([]string, error)
	DateData(ctx context.Context, date string) (model.DateData, error)
	CreateDate(ctx context.Context, date string) (model.BjorliGame, error)
	SetLocked(ctx context.Context, date string, locked bool) error
}

// DatesHandler handles the /api/dates routes.
type DatesHandler struct {
	deps DateDependencies
}

// NewDatesHandler creates a new dates handler.
func NewDatesHandler(deps DateDependencies) *DatesHandler {
	return &DatesHandler{deps: deps}
}

type createDateRequest struct {
	Date string `json:"date"`
}

type lockRequest struct {
	Locked *bool `json:"locked"`
}

type lockResponse struct {
	Date   string `json:"date"`
	Locked bool   `json:"locked"`
}

// HandleListDates handles GET /api/dates.
func (h *DatesHandler) HandleListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.deps.Dates(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, dates)
}

// HandleGetDate handles GET /api/dates/{date}.
func (h *DatesHandler) HandleGetDate(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "api.get_date")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	data, err := h.deps.DateData(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// HandleCreateDate handles POST /api/dates.
func (h *DatesHandler) HandleCreateDate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_date"
	var req createDateRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	g, err := h.deps.CreateDate(r.Context(), req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// HandleSetLock handles PUT /api/dates/{date}/lock.
func (h *DatesHandler) HandleSetLock(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_lock"
	date, err := pathDate(r, op)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req lockRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Locked == nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.SetLocked(r.Context(), date, *req.Locked); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lockResponse{Date: date, Locked: *req.Locked})
}
