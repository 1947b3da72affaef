package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"motorhub/pkg/platform/circuit"
)

const maxResponseBytes = 1 << 20

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPAdapterConfig configures an HTTPAdapter.
type HTTPAdapterConfig struct {
	ID         string
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	// Breaker is optional. Timeouts and outages count as failures.
	Breaker *circuit.Breaker
	Logger  *slog.Logger
}

// HTTPAdapter calls a JSON upstream and classifies every failure into a
// ProviderError.
type HTTPAdapter struct {
	id      string
	baseURL string
	apiKey  string
	client  HTTPDoer
	timeout time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewHTTPAdapter(cfg HTTPAdapterConfig) *HTTPAdapter {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPAdapter{
		id:      cfg.ID,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  selectHTTPClient(cfg),
		timeout: cfg.Timeout,
		breaker: cfg.Breaker,
		logger:  logger,
	}
}

func selectHTTPClient(cfg HTTPAdapterConfig) HTTPDoer {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (a *HTTPAdapter) ID() string {
	return a.id
}

// GetJSON performs GET baseURL+path and decodes a 2xx body into out.
func (a *HTTPAdapter) GetJSON(ctx context.Context, path string, out any) error {
	return a.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON encodes in, performs POST baseURL+path and decodes a 2xx body into out.
func (a *HTTPAdapter) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return NewProviderError(ErrorInternal, a.id, "failed to marshal request", err)
	}
	return a.do(ctx, http.MethodPost, path, body, out)
}

// Health checks GET /health on the upstream.
func (a *HTTPAdapter) Health(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (a *HTTPAdapter) do(ctx context.Context, method, path string, body []byte, out any) error {
	if a.breaker != nil && !a.breaker.Allow() {
		return NewProviderError(ErrorProviderOutage, a.id, "upstream temporarily unavailable", ErrCircuitOpen)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return NewProviderError(ErrorInternal, a.id, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.apiKey != "" {
		req.Header.Set("X-API-Key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		var netErr net.Error
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
			return a.fail(NewProviderError(ErrorTimeout, a.id, "request timeout", err))
		case errors.Is(ctx.Err(), context.Canceled):
			// The caller went away; that says nothing about upstream health.
			return ctx.Err()
		}
		return a.fail(NewProviderError(ErrorProviderOutage, a.id, "failed to execute request", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return a.fail(NewProviderError(ErrorTimeout, a.id, "request timeout", err))
		}
		return a.fail(NewProviderError(ErrorBadData, a.id, "failed to read response", err))
	}

	if pe := a.classifyStatus(resp.StatusCode, respBody); pe != nil {
		if pe.Category == ErrorProviderOutage {
			return a.fail(pe)
		}
		a.succeed()
		return pe
	}
	a.succeed()

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return NewProviderError(ErrorBadData, a.id, "failed to parse response", err)
	}
	return nil
}

func (a *HTTPAdapter) classifyStatus(status int, body []byte) *ProviderError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return NewProviderError(ErrorAuthentication, a.id, fmt.Sprintf("authentication failed: %d", status), nil)
	case status == http.StatusNotFound:
		return NewProviderError(ErrorNotFound, a.id, "record not found", nil)
	case status == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, a.id, "rate limit exceeded", nil)
	case status == http.StatusPaymentRequired, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return NewProviderError(ErrorRejected, a.id, upstreamMessage(body, "request rejected by provider"), nil)
	case status >= 500:
		return NewProviderError(ErrorProviderOutage, a.id, fmt.Sprintf("provider unavailable: %d", status), nil)
	default:
		return NewProviderError(ErrorBadData, a.id, fmt.Sprintf("unexpected status: %d", status), nil)
	}
}

func (a *HTTPAdapter) fail(pe *ProviderError) error {
	if a.breaker != nil {
		if change := a.breaker.RecordFailure(); change.Opened {
			a.logger.Warn("upstream circuit opened", "provider", a.id, "category", pe.Category)
		}
	}
	return pe
}

func (a *HTTPAdapter) succeed() {
	if a.breaker != nil {
		if change := a.breaker.RecordSuccess(); change.Closed {
			a.logger.Info("upstream circuit closed", "provider", a.id)
		}
	}
}

// upstreamMessage extracts {"message": ...} or {"error": ...} from an error body.
func upstreamMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return msg
	}
	return fallback
}
