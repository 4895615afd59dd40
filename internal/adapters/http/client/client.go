// Package client talks to the score sheet API on behalf of the sheet page.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/bjorlileika/internal/domain/model"
	"github.com/okian/bjorlileika/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 512
)

// ErrUnexpectedStatus is returned when the server answers with a status
// the call does not expect.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client wraps http.Client with the sheet API routes.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetDates lists the session dates, newest first.
func (c *Client) GetDates(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/dates", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}
	var dates []string
	if err := json.NewDecoder(resp.Body).Decode(&dates); err != nil {
		return nil, fmt.Errorf("decode dates: %w", err)
	}
	return dates, nil
}

// GetDateData returns the players and games for date, or nil when the
// server does not know the date.
func (c *Client) GetDateData(ctx context.Context, date string) (*model.DateData, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/dates/"+url.PathEscape(date), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, statusError(resp)
	}
	var data model.DateData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode date data: %w", err)
	}
	return &data, nil
}

// SendGame submits a full session. A rejected submission comes back as a
// result with a non-success status, not as an error.
func (c *Client) SendGame(ctx context.Context, game model.BjorliGame) (model.SubmitResult, error) {
	body, err := json.Marshal(game)
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("encode game: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/games", body)
	if err != nil {
		return model.SubmitResult{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("read send response: %w", err)
	}
	var res model.SubmitResult
	if err := json.Unmarshal(raw, &res); err != nil || res.Status == "" {
		return model.SubmitResult{}, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, truncate(raw))
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	id := logger.RequestID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, id)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if c.logger != nil {
		c.logger.Debug(logger.WithRequestID(ctx, id), "api call",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.Float64("ms", float64(time.Since(start).Microseconds())/1000),
		)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, truncate(raw))
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return s
}
