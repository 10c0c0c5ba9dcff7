// Package provider holds the HTTP plumbing shared by the Meta and TikTok API clients.
package provider

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lara783/lensandlaunch.com-sub001/common/logger"
)

const (
	Meta   = "meta"
	TikTok = "tiktok"

	// maxBodyBytes caps how much of a provider response is read into memory.
	maxBodyBytes  = 4 << 20
	maxLoggedBody = 512

	DefaultTimeout = 30 * time.Second
)

const (
	OutcomeOK             = "ok"
	OutcomeProviderError  = "provider_error"
	OutcomeTransportError = "transport_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_provider_requests_total",
			Help: "Outbound provider API calls by provider, operation and outcome.",
		},
		[]string{"provider", "operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_provider_request_duration_seconds",
			Help:    "Latency of outbound provider API calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)
)

// TransportError means the provider could not be reached or answered with
// something that is not a readable response. The provider's own error payloads
// are reported through the adapter's typed errors instead.
type TransportError struct {
	Provider  string
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is, or wraps, a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Response is a fully read provider response.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewHTTPClient returns the client used for all provider calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Do executes req and reads the body. Non-2xx statuses are not errors here;
// each adapter decides what a failed response means.
func Do(client *http.Client, providerName, operation string, req *http.Request) (*Response, error) {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(providerName, operation).Observe(time.Since(start).Seconds())
	}()

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: providerName, Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Provider: providerName, Operation: operation, Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		slog.DebugContext(req.Context(), "provider returned error status",
			"provider", providerName,
			"operation", operation,
			"status", resp.StatusCode,
			"body", logger.Truncate(string(body), maxLoggedBody),
		)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// Observe counts a finished operation. It is called once per adapter call with
// the error that call returned.
func Observe(providerName, operation string, err error) {
	requestsTotal.WithLabelValues(providerName, operation, Outcome(err)).Inc()
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case IsTransport(err):
		return OutcomeTransportError
	default:
		return OutcomeProviderError
	}
}
