// Package flights is a client for the StudentUniverse flight search endpoint.
package flights

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/browserutils/kooky"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultBaseURL        = "https://www.studentuniverse.com"
	DefaultSearchEndpoint = "/wapi/flightsWapi/searchFlightsSpanned"
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/53.0.2785.116 Safari/537.36"
)

type httpClient interface {
	Do(req *retryablehttp.Request) (*http.Response, error)
}

// Client talks to the search site. A Client issues one request at a time and never retries.
type Client struct {
	baseURL        string
	searchEndpoint string
	landingHeaders http.Header
	searchHeaders  http.Header
	browserCookies bool
	log            *slog.Logger

	client httpClient
	now    func() time.Time
}

type ClientOption func(c *Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithSearchEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.searchEndpoint = endpoint
	}
}

// WithLandingHeaders replaces the headers sent with the session request.
func WithLandingHeaders(h http.Header) ClientOption {
	return func(c *Client) {
		c.landingHeaders = h.Clone()
	}
}

// WithSearchHeaders replaces the headers sent with the search request.
func WithSearchHeaders(h http.Header) ClientOption {
	return func(c *Client) {
		c.searchHeaders = h.Clone()
	}
}

// WithBrowserCookies merges cookies for the site found in local browser profiles into the session.
func WithBrowserCookies(enabled bool) ClientOption {
	return func(c *Client) {
		c.browserCookies = enabled
	}
}

// WithLogger enables request tracing at debug level.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if rc, ok := c.client.(*retryablehttp.Client); ok && d > 0 {
			rc.HTTPClient.Timeout = d
		}
	}
}

func withHTTPClient(hc httpClient) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// noRetryPolicy hands every response back to the caller. Only context errors are reported
// as policy errors so a cancelled run stops with the context's error.
func noRetryPolicy() func(ctx context.Context, resp *http.Response, err error) (bool, error) {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return false, ctx.Err()
			}
		}
		return false, nil
	}
}

func NewClient(opts ...ClientOption) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.CheckRetry = noRetryPolicy()
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.HTTPClient.Timeout = 60 * time.Second

	c := &Client{
		baseURL:        DefaultBaseURL,
		searchEndpoint: DefaultSearchEndpoint,
		landingHeaders: DefaultLandingHeaders(DefaultUserAgent),
		client:         rc,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.searchHeaders == nil {
		c.searchHeaders = DefaultSearchHeaders(DefaultUserAgent, c.baseURL)
	}

	if rc, ok := c.client.(*retryablehttp.Client); ok && c.log != nil {
		rc.Logger = c.log
		rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
			c.log.Debug("http request", "method", req.Method, "url", req.URL.String(), "headers", req.Header)
		}
		rc.ResponseLogHook = func(_ retryablehttp.Logger, res *http.Response) {
			c.log.Debug("http response", "status", res.StatusCode, "headers", res.Header)
		}
	}
	return c
}

// DefaultLandingHeaders mimics a browser opening the site's front page.
// Accept-Encoding is left to the transport so compressed bodies are decoded transparently.
func DefaultLandingHeaders(userAgent string) http.Header {
	h := http.Header{}
	h.Set("Cache-Control", "max-age=0")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "text/html, application/xhtml+xml,application/xml; q = 0.9,image/webp,*/*;q=0.8")
	h.Set("DNT", "1")
	h.Set("Accept-Language", "en-US,en;q=0.8,ms;q=0.6")
	return h
}

// DefaultSearchHeaders mimics the site's own search XHR. Content-Length is set by the transport.
func DefaultSearchHeaders(userAgent, origin string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Su-Fail-If-First", "true")
	h.Set("Origin", origin)
	h.Set("User-Agent", userAgent)
	h.Set("Content-Type", "text/plain")
	h.Set("DNT", "1")
	h.Set("Referer", origin+"/")
	h.Set("Accept-Language", "en-US,en;q=0.8,ms;q=0.6")
	return h
}

func getCookies(res *http.Response) Cookies {
	cookies := Cookies{}
	for _, c := range res.Header.Values("Set-Cookie") {
		pair := strings.TrimSpace(strings.Split(c, ";")[0])
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		cookies[name] = value
	}
	return cookies
}

// readBrowserCookies is replaced in tests.
var readBrowserCookies = func(domain string) Cookies {
	cookies := Cookies{}
	for _, bc := range kooky.ReadCookies(kooky.Valid, kooky.DomainHasSuffix(domain)) {
		cookies[bc.Name] = bc.Value
	}
	return cookies
}

func (c *Client) cookieDomain() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// FetchSession opens the site's landing page and returns the cookies it sets.
func (c *Client) FetchSession(ctx context.Context) (Cookies, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	req.Header = c.landingHeaders.Clone()

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch session: err sending request to %s: %w", c.baseURL, err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	cookies := getCookies(res)

	if c.browserCookies {
		if domain := c.cookieDomain(); domain != "" {
			for name, value := range readBrowserCookies(domain) {
				if _, ok := cookies[name]; !ok {
					cookies[name] = value
				}
			}
		}
	}

	return cookies, nil
}
