package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a fetched document. Tree documents are
// small; anything larger is almost certainly not one.
const DefaultMaxBytes = 4 << 20

var (
	// ErrNotFound is returned when the requested URL does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrTooLarge is returned when a response body exceeds [DefaultMaxBytes].
	ErrTooLarge = errors.New("document too large")
)

// NewHTTPClient creates an HTTP client with a standard timeout for
// document requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Fetch performs a single GET request for url and returns the response body.
//
// Transport errors and 5xx or 429 responses come back wrapped in
// [RetryableError] so callers can pass Fetch to [Retry]. A 404 maps to
// [ErrNotFound] and a body over [DefaultMaxBytes] to [ErrTooLarge]; neither
// triggers a retry. A nil client uses [NewHTTPClient].
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = NewHTTPClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/plain")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, DefaultMaxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	if len(data) > DefaultMaxBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrTooLarge, DefaultMaxBytes)
	}
	return data, nil
}

// FetchWithRetry wraps [Fetch] with the default retry policy.
func FetchWithRetry(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = Fetch(ctx, client, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
