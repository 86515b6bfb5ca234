package mailer

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

type statusKey struct{}

// TrackStatus returns a context that records the HTTP status of responses
// fetched through a client built by NewHTTPClient, and a func reading the
// last recorded status (0 when no response arrived).
func TrackStatus(ctx context.Context) (context.Context, func() int) {
	var status atomic.Int32
	return context.WithValue(ctx, statusKey{}, &status), func() int {
		return int(status.Load())
	}
}

type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		if status, ok := req.Context().Value(statusKey{}).(*atomic.Int32); ok {
			status.Store(int32(resp.StatusCode))
		}
	}
	return resp, err
}

// NewHTTPClient returns an HTTP client for provider SDKs that reports
// response statuses to TrackStatus contexts.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: statusTransport{base: http.DefaultTransport},
	}
}

// ClassifyStatus sorts a provider error using the HTTP status it came with.
// 4xx is a refusal, 5xx is a provider outage, and without a status the error
// goes through Classify.
func ClassifyStatus(provider string, status int, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case status >= 400 && status < 500:
		return Reject(provider, status, err)
	case status >= 500:
		return fmt.Errorf("%s: provider unavailable (status %d): %w", provider, status, err)
	}
	return Classify(provider, err)
}
