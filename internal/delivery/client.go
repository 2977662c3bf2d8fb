package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/danomnoms/server/internal/metrics"
	logx "github.com/danomnoms/server/pkg/logger"
)

const (
	DefaultBaseURL = "https://openapi.doordash.com/drive/v2"
	DefaultTimeout = 30 * time.Second

	opCreate = "create_delivery"
	opTrack  = "track_delivery"

	maxResponseBytes = 1 << 20
)

// Client calls the DoorDash Drive API. A fresh token is minted per call.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

type ClientOption func(*Client)

// WithHTTPClient replaces the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

func WithNow(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

func NewClient(cfg Config, opts ...ClientOption) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// CreateDelivery registers a delivery. 200 and 201 are success; any other status is
// reported with the upstream status and body.
func (c *Client) CreateDelivery(ctx context.Context, req CreateRequest) (*Delivery, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errx.Unexpected(err, fmt.Sprintf("Unexpected error creating delivery: %v", err))
	}

	status, respBody, err := c.do(ctx, opCreate, http.MethodPost, "/deliveries", body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, upstreamStatus(status, respBody)
	}

	d := newDelivery(respBody)
	logx.Info().
		Str("external_delivery_id", d.ExternalDeliveryID()).
		Str("status", d.Status()).
		Str("tracking_url", d.TrackingURL()).
		Int64("fee_cents", d.Fee()).
		Msg("delivery created")
	return d, nil
}

// TrackDelivery fetches a delivery by the caller's external id.
func (c *Client) TrackDelivery(ctx context.Context, externalDeliveryID string) (*Delivery, error) {
	path := "/deliveries/" + url.PathEscape(externalDeliveryID)
	status, respBody, err := c.do(ctx, opTrack, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errx.NotFound(fmt.Sprintf("Delivery with external_delivery_id '%s' not found", externalDeliveryID))
	default:
		return nil, upstreamStatus(status, respBody)
	}

	d := newDelivery(respBody)
	logx.Debug().
		Str("external_delivery_id", externalDeliveryID).
		Str("status", d.Status()).
		Msg("delivery tracked")
	return d, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (int, []byte, error) {
	token, err := NewToken(c.cfg, c.now())
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, errx.Unexpected(err, fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordDeliveryCall(op, 0, time.Since(start))
		logx.Warn().Err(err).Str("operation", op).Msg("delivery provider unreachable")
		return 0, nil, errx.Upstream(err, http.StatusInternalServerError,
			fmt.Sprintf("Error communicating with DoorDash API: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	metrics.RecordDeliveryCall(op, resp.StatusCode, time.Since(start))
	if err != nil {
		return 0, nil, errx.Upstream(err, http.StatusInternalServerError,
			fmt.Sprintf("Error communicating with DoorDash API: %v", err))
	}
	return resp.StatusCode, respBody, nil
}

func upstreamStatus(status int, body []byte) error {
	msg := fmt.Sprintf("DoorDash API error: %s", strings.TrimSpace(string(body)))
	logx.Warn().Int("status", status).Str("body", string(body)).Msg("delivery provider rejected request")
	return errx.Upstream(nil, status, msg)
}
