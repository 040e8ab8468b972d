package http

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"

	"reviewsclient/internal/logging"
)

const RequestIDHeader = "X-Request-ID"

// NewClient returns the client every component shares: one cookie jar so
// the csrftoken cookie set by the site is visible to the credential layer.
func NewClient(timeout time.Duration) *http.Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &http.Client{
		Timeout:   timeout,
		Jar:       jar,
		Transport: WithStandardMiddleware(http.DefaultTransport),
	}
}

func WithStandardMiddleware(next http.RoundTripper) http.RoundTripper {
	return requestID(requestLogger(next))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func requestID(next http.RoundTripper) http.RoundTripper {
	return roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(RequestIDHeader) == "" {
			r = r.Clone(r.Context())
			r.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return next.RoundTrip(r)
	})
}

func requestLogger(next http.RoundTripper) http.RoundTripper {
	return roundTripFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(RequestIDHeader),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			logging.From(r.Context()).Debug("http.request", append(attrs, "err", err)...)
			return nil, err
		}
		logging.From(r.Context()).Debug("http.request", append(attrs, "status", resp.StatusCode)...)
		return resp, nil
	})
}
