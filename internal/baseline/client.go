package baseline

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Laisky/baseline-mcp/internal/metrics"
	"github.com/Laisky/baseline-mcp/library"
	appLog "github.com/Laisky/baseline-mcp/library/log"
)

// logBodyLimit caps the number of response bytes logged for debugging.
const logBodyLimit = 4096

const tracerName = "github.com/Laisky/baseline-mcp/internal/baseline"

// Client talks to the webstatus.dev feature API.
type Client struct {
	apiBase    string
	httpClient *http.Client
	logger     logSDK.Logger
	tracer     trace.Tracer
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger logSDK.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client against apiBase, e.g. https://api.webstatus.dev.
func NewClient(apiBase string, opts ...ClientOption) (*Client, error) {
	apiBase = strings.TrimSpace(apiBase)
	if apiBase == "" {
		return nil, errors.New("api base url is required")
	}

	c := &Client{
		apiBase:    apiBase,
		httpClient: &http.Client{},
		logger:     appLog.Logger.Named("baseline_client"),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// APIBase returns the configured upstream base URL.
func (c *Client) APIBase() string {
	return c.apiBase
}

// SearchFeatures queries the upstream API for terms and returns the features
// in upstream order.
func (c *Client) SearchFeatures(ctx context.Context, terms []string, limit int) ([]Feature, error) {
	resp := new(FeaturesResponse)
	if err := c.FetchJSON(ctx, BuildFeaturesURL(c.apiBase, terms, limit), resp); err != nil {
		return nil, err
	}

	return resp.List(), nil
}

// FetchJSON GETs rawURL and decodes the JSON body into out.
// Every failure is returned as a *FetchError.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "baseline.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", rawURL)),
	)
	startAt := time.Now()
	statusLabel := "transport_error"
	defer func() {
		metrics.UpstreamLatency.WithLabelValues(statusLabel).Observe(time.Since(startAt).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &FetchError{URL: rawURL, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("url", rawURL),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{URL: rawURL, Err: errors.Wrap(err, "send request")}
	}
	defer resp.Body.Close() // nolint: errcheck

	statusLabel = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read response body")}
	}

	truncatedBody, truncated := library.TruncateForLog(body, logBodyLimit)
	c.logger.Debug("incoming http response",
		zap.String("method", req.Method),
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status %s: %s", resp.Status, truncatedBody),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode json body")}
	}

	return nil
}
