package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/pkg/metrics"

	appErrors "github.com/smarteval/smarteval-go/pkg/errors"
)

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource func() string

// Options configures the transport client.
type Options struct {
	// BaseURL includes the /api prefix, e.g. https://host/api.
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *zap.Logger
	Metrics    *metrics.Recorder

	// OnUnauthorized is invoked once per 401 response on an authenticated
	// call. The wiring layer binds it to forced logout.
	OnUnauthorized func()
}

// Client is the single configured HTTP client behind every repository. It
// attaches the bearer token and a correlation ID to each request and maps
// failures into the typed error taxonomy. No retries, no token refresh.
type Client struct {
	http           *http.Client
	baseURL        string
	tokens         TokenSource
	logger         *zap.Logger
	metrics        *metrics.Recorder
	onUnauthorized func()
}

// NewClient constructs a transport client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = func() string { return "" }
	}
	return &Client{
		http:           httpClient,
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		tokens:         tokens,
		logger:         logger,
		metrics:        opts.Metrics,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// call describes one backend operation. Endpoint is the templated path used
// as the metrics label so IDs do not explode cardinality.
type call struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	body     interface{}
	noAuth   bool
}

// serverBody is the error shape the backend returns on non-2xx responses.
type serverBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, req call, out interface{}) error {
	var bodyReader io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return appErrors.Decode(err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	target := c.baseURL + "/" + strings.TrimLeft(req.path, "/")
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, bodyReader)
	if err != nil {
		return appErrors.Network(err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if !req.noAuth {
		if token := c.tokens(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(req, 0, start)
		c.logger.Warn("request failed",
			zap.String("method", req.method),
			zap.String("endpoint", req.endpoint),
			zap.Error(err))
		return appErrors.Network(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.observe(req, resp.StatusCode, start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Network(err)
	}

	c.logger.Debug("request completed",
		zap.String("method", req.method),
		zap.String("endpoint", req.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && !req.noAuth && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return appErrors.Server(resp.StatusCode, serverMessage(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.Decode(fmt.Errorf("decode %s %s: %w", req.method, req.endpoint, err))
	}
	return nil
}

func (c *Client) observe(req call, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRequest(req.method, req.endpoint, status, time.Since(start))
}

// serverMessage extracts the server-supplied message from an error body.
// Returns empty when the body is not decodable, leaving fallback selection
// to the repository layer.
func serverMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var body serverBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
