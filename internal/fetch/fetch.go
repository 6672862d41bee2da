// Package fetch retrieves a metrics exposition over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	promconfig "github.com/prometheus/common/config"
	"github.com/rileyhilliard/promtui/internal/errors"
	"github.com/rileyhilliard/promtui/internal/logger"
)

// acceptHeader prefers OpenMetrics and falls back to the text format, the way
// a Prometheus scrape negotiates.
const acceptHeader = "application/openmetrics-text;version=1.0.0;q=0.5,text/plain;version=0.0.4;q=0.4,*/*;q=0.1"

// Response is a fetched exposition body and the Content-Type it was served with.
type Response struct {
	Body        string
	ContentType string
}

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// Client performs one blocking GET per call.
type Client struct {
	http      *http.Client
	userAgent string
	log       logger.Logger
}

// NewClient builds a client from the Prometheus HTTP client defaults
// (redirects followed, HTTP/2 enabled, environment proxy settings honored).
func NewClient(opts Options, log logger.Logger) (*Client, error) {
	httpClient, err := promconfig.NewClientFromConfig(promconfig.DefaultHTTPClientConfig, "promtui")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Could not set up the HTTP client",
			"")
	}
	httpClient.Timeout = opts.Timeout

	if log == nil {
		log = logger.Noop()
	}

	return &Client{
		http:      httpClient,
		userAgent: opts.UserAgent,
		log:       log,
	}, nil
}

// NormalizeEndpoint prefixes http:// when the endpoint has no scheme.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "http://" + endpoint
}

// Fetch GETs the endpoint and returns the body with its Content-Type. Transport failures and
// non-2xx statuses are returned as ErrFetch errors.
func (c *Client) Fetch(ctx context.Context, endpoint string) (*Response, error) {
	url := NormalizeEndpoint(endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("'%s' doesn't look like a valid endpoint", endpoint),
			"Use host:port, host:port/path or a full http(s) URL.")
	}
	req.Header.Set("Accept", acceptHeader)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.log.Debug("GET %s", url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Could not fetch metrics from %s", url),
			"Check that the exporter is running and reachable from this machine.")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrFetch,
			fmt.Sprintf("%s returned HTTP %s", url, resp.Status),
			"Check the metrics path (usually /metrics).")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Reading the response from %s failed", url))
	}

	contentType := resp.Header.Get("Content-Type")
	c.log.Debug("%s: %d bytes, %s, took %s", url, len(body), contentType, time.Since(start).Round(time.Millisecond))
	return &Response{Body: string(body), ContentType: contentType}, nil
}
