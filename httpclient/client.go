// Package httpclient is the shared network access layer. It owns the retry
// budget: transient failures (timeouts, connection errors, 5xx, 429) are
// retried with exponential backoff, semantic failures (404 and other 4xx)
// are returned to the caller on the first attempt.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/oGsLP/lyrics-download-and-translate/config"
	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
)

const (
	// userAgent is the browser-like identity header sent with every request
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// requestsPerSecond paces outbound requests across all providers
	requestsPerSecond = 2
	burstLimit        = 4
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether the error is an HTTP 404.
func IsNotFound(err error) bool {
	se, ok := statusError(err)
	return ok && se.StatusCode == http.StatusNotFound
}

// Client wraps http.Client with timeout, bounded retry, proxy selection and
// outbound rate limiting. One instance is shared by every provider in a run.
type Client struct {
	http       *http.Client
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
}

// New builds a client from the run configuration. Config-file proxy settings
// win over HTTP_PROXY/HTTPS_PROXY environment variables.
func New(cfg config.Config, env config.Env) *Client {
	transport := &http.Transport{
		Proxy: proxyFunc(cfg.Proxy, env),
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: transport,
		},
		maxRetries: cfg.Settings.MaxRetries,
		retryDelay: cfg.RetryDelay(),
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burstLimit),
	}
}

// proxyFunc resolves the proxy for each request. The config file proxy, when
// enabled, takes precedence; otherwise the standard environment variables
// apply.
func proxyFunc(proxy config.ProxyConfig, env config.Env) func(*http.Request) (*url.URL, error) {
	if proxy.Enabled && (proxy.HTTP != "" || proxy.HTTPS != "") {
		httpURL := parseProxyURL(proxy.HTTP)
		httpsURL := parseProxyURL(proxy.HTTPS)
		if httpsURL == nil {
			httpsURL = httpURL
		}
		if httpURL != nil {
			log.Infof("%s HTTP: %s", logcolors.LogProxy, httpURL)
		}
		if httpsURL != nil {
			log.Infof("%s HTTPS: %s", logcolors.LogProxy, httpsURL)
		}
		return func(req *http.Request) (*url.URL, error) {
			if req.URL.Scheme == "https" {
				return httpsURL, nil
			}
			return httpURL, nil
		}
	}

	if env.HTTPProxy != "" || env.HTTPSProxy != "" {
		log.Debugf("%s Using proxy from environment", logcolors.LogProxy)
	}
	return http.ProxyFromEnvironment
}

func parseProxyURL(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		log.Warnf("%s Invalid proxy URL %q: %v", logcolors.LogProxy, raw, err)
		return nil
	}
	return u
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, requestURL string, headers map[string]string) ([]byte, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		applyHeaders(req, headers)
		return req, nil
	})
}

// PostForm performs a form-encoded POST request and returns the response body.
func (c *Client) PostForm(ctx context.Context, requestURL string, form url.Values) ([]byte, error) {
	body := form.Encode()
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		applyHeaders(req, nil)
		return req, nil
	})
}

func applyHeaders(req *http.Request, headers map[string]string) {
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

// do runs the bounded retry loop. The request is rebuilt per attempt so the
// body reader is fresh each time.
func (c *Client) do(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	var lastErr error
	delay := c.retryDelay

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			log.Debugf("%s Attempt %d/%d after %v: %v", logcolors.LogRetry, attempt, c.maxRetries, delay, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		body, err := c.once(req)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !transient(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) once(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// transient reports whether a failure is worth retrying. Timeouts and
// connection-level errors are; 404s and other semantic responses are not.
func transient(err error) bool {
	if se, ok := statusError(err); ok {
		return se.StatusCode >= 500 || se.StatusCode == http.StatusTooManyRequests
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		// DNS failures, refused connections, resets, timeouts
		return true
	}
	return false
}

func statusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
