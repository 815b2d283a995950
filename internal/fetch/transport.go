package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrHostDisconnected marks a fetch that failed because the embedding host
// went away mid-flight (relay closed, runtime reloaded). Expected during
// host restarts; callers treat it as a silent no-op rather than an error.
var ErrHostDisconnected = errors.New("host disconnected")

// Transport is the cross-boundary fetch protocol: one request kind carrying
// a target URL, yielding the raw document or an error.
type Transport interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// IsDisconnect reports whether an error carries the host-disconnect
// signature. Cancellation of the run context counts: it means the embedding
// session is being torn down, not that the fetch itself failed.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrHostDisconnected) || errors.Is(err, context.Canceled) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection reset by peer")
}

// HTTPTransport fetches documents over plain HTTP.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport builds a transport with a per-request timeout.
func NewHTTPTransport(timeout time.Duration, userAgent string) *HTTPTransport {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPTransport{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch implements Transport. Any non-2xx status is a fetch failure.
func (t *HTTPTransport) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", url, err)
	}
	return payload, nil
}
