package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/payload"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
)

const (
	// DefaultBaseURL is the local code-generation service.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultPath is the submission endpoint below the base URL.
	DefaultPath = "/runs/programmatic"

	acceptHeader = "application/json, text/x-python"
)

// StatusReader exposes the current certificate status.
type StatusReader interface {
	Get() certs.Status
}

// Config holds the submission endpoint settings.
type Config struct {
	BaseURL string
	Path    string
	Timeout time.Duration // zero waits for as long as ctx allows
}

// Client submits scenarios to the code-generation service. At most one
// submission per client runs at a time, so each editor gets its own client
// (see Clone). There are no retries.
type Client struct {
	endpoint   string
	httpClient *http.Client
	certs      StatusReader
	logger     logger.Logger
	inFlight   atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCertificateStatus sets the source used to annotate transport errors.
func WithCertificateStatus(r StatusReader) Option {
	return func(c *Client) {
		c.certs = r
	}
}

// New creates a client for cfg.
func New(cfg Config, log logger.Logger, opts ...Option) (*Client, error) {
	endpoint, err := Endpoint(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		certs:      certs.NewMonitor(),
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Clone returns a client for the same endpoint with its own in-flight
// guard. The HTTP client, certificate status and logger are shared.
func (c *Client) Clone() *Client {
	return &Client{
		endpoint:   c.endpoint,
		httpClient: c.httpClient,
		certs:      c.certs,
		logger:     c.logger,
	}
}

// Endpoint joins the base URL and path of cfg, applying defaults.
func Endpoint(cfg Config) (string, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid service URL %q", base)
	}
	return u.String(), nil
}

// URL returns the submission endpoint.
func (c *Client) URL() string {
	return c.endpoint
}

// Submitting reports whether a submission is outstanding.
func (c *Client) Submitting() bool {
	return c.inFlight.Load()
}

// Submit transforms ts into the wire payload and posts it.
func (c *Client) Submit(ctx context.Context, ts scenario.TestScenario) (*Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInProgress
	}
	defer c.inFlight.Store(false)

	body, err := payload.Marshal(ts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", acceptHeader)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		terr := &TransportError{Endpoint: c.endpoint, Certificate: c.certs.Get(), Err: err}
		c.logger.Error(ctx, "submission failed", map[string]interface{}{
			"endpoint":     c.endpoint,
			"certificates": string(terr.Certificate),
			"error":        err.Error(),
		})
		return nil, terr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: c.endpoint, Certificate: c.certs.Get(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &RemoteError{StatusCode: resp.StatusCode, Message: remoteMessage(resp.StatusCode, respBody)}
		c.logger.Warn(ctx, "submission rejected", map[string]interface{}{
			"status":  resp.StatusCode,
			"message": rerr.Message,
		})
		return nil, rerr
	}

	res := classify(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	c.logger.Info(ctx, "scenario submitted", map[string]interface{}{
		"status":   resp.StatusCode,
		"kind":     string(res.Kind),
		"steps":    len(ts.Steps),
		"duration": time.Since(start).String(),
	})
	return res, nil
}
