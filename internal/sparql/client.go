package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"episodecheck/internal/logging"
)

// DefaultEndpoint is the public Wikidata query service.
const DefaultEndpoint = "https://query.wikidata.org/sparql"

// ErrStatus marks responses with a non-200 status code.
var ErrStatus = errors.New("sparql endpoint returned unexpected status")

// Client runs queries against a SPARQL endpoint over HTTP.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Querier = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger for per-query debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a SPARQL client. The Wikidata service rejects requests without a
// descriptive User-Agent, so one is required.
func New(endpoint, userAgent string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("sparql endpoint required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("parse sparql endpoint: %w", err)
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("sparql user agent required")
	}
	client := &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "sparql")
	return client, nil
}

// Run posts the query and decodes the JSON result.
func (c *Client) Run(ctx context.Context, query, reason string) (*Result, error) {
	query = Normalize(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	form := url.Values{}
	form.Set("query", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", c.userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d (latency=%v): %s", ErrStatus, resp.StatusCode, latency, strings.TrimSpace(string(detail)))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sparql response: %w", err)
	}

	c.logger.Debug("sparql query completed",
		logging.String(logging.FieldQueryReason, reason),
		logging.Int("rows", len(result.Bindings)),
		logging.Duration("latency", latency))
	return &result, nil
}
