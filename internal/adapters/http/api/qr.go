package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/pkg/metrics"
	qr "github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// DateReader checks that a session exists.
type DateReader interface {
	DateData(ctx context.Context, date string) (model.DateData, error)
}

// QRHandler renders share links for a date as PNG QR codes.
type QRHandler struct {
	deps      DateReader
	publicURL string
	size      int
}

// NewQRHandler creates a QR handler linking to publicURL.
func NewQRHandler(deps DateReader, publicURL string, size int) *QRHandler {
	if size <= 0 {
		size = defaultQRSize
	}
	return &QRHandler{deps: deps, publicURL: strings.TrimRight(publicURL, "/"), size: size}
}

// ShareURL returns the sheet link encoded for date.
func (h *QRHandler) ShareURL(date string) string {
	return h.publicURL + "/?date=" + url.QueryEscape(date)
}

// HandleGetQR handles GET /api/dates/{date}/qr.
func (h *QRHandler) HandleGetQR(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_qr"
	date, err := pathDate(r, op)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if _, err := h.deps.DateData(r.Context(), date); err != nil {
		writeDomainError(w, err)
		return
	}
	png, err := qr.Encode(h.ShareURL(date), qr.Medium, h.size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrQRCode, err))
		return
	}
	metrics.RecordQRCodeRendered()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
