package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/slotgate/availability-api/pkg/config"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
)

// ErrNoAvailableUsers is the upstream signal that the requested slot can no
// longer be booked. The booking flow uses it to fall back to suggestions.
var ErrNoAvailableUsers = errors.New("no_available_users_found_error")

const noAvailableUsersMessage = "no_available_users_found_error"

// Observer receives upstream call telemetry.
type Observer interface {
	ObserveUpstreamRequest(endpoint string, status int, duration time.Duration)
}

// Client talks to the Cal.com v1 REST API. All state lives upstream; the
// client is a stateless transport with API-key authentication.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver attaches upstream request telemetry.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient constructs a Cal.com client.
func NewClient(cfg config.CalComConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dest interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, dest)
}

func (c *Client) post(ctx context.Context, endpoint string, query url.Values, body interface{}, dest interface{}) error {
	return c.do(ctx, http.MethodPost, endpoint, query, body, dest)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body interface{}, dest interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("apiKey", c.apiKey)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode upstream payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint+"?"+query.Encode(), reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(endpoint, 0, duration)
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return appErrors.Wrap(err, appErrors.ErrUpstreamTimeout.Code, appErrors.ErrUpstreamTimeout.Status,
				fmt.Sprintf("calcom %s timed out", endpoint))
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status,
			fmt.Sprintf("calcom %s request failed", endpoint))
	}
	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode, duration)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.upstreamError(endpoint, resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status,
			fmt.Sprintf("calcom %s returned an unreadable response", endpoint))
	}
	return nil
}

// upstreamError surfaces the upstream message verbatim so callers never
// lose the reason a fetch failed.
func (c *Client) upstreamError(endpoint string, resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = resp.Status
	}

	c.logger.Warn("calcom request rejected",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.String("upstream_message", message),
	)

	if message == noAvailableUsersMessage {
		return appErrors.Wrap(ErrNoAvailableUsers, appErrors.ErrSlotUnavailable.Code, appErrors.ErrSlotUnavailable.Status,
			appErrors.ErrSlotUnavailable.Message)
	}

	return appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("calcom %s failed: %s", endpoint, message))
}

func (c *Client) observe(endpoint string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstreamRequest(endpoint, status, duration)
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
