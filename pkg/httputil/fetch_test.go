package httputil

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(`{"root":{"label":"r"}}`))
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), server.Client(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != `{"root":{"label":"r"}}` {
		t.Errorf("Fetch() = %q", data)
	}
}

func TestFetchNilClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), nil, server.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("Fetch() = %q", data)
	}
}

func TestFetch404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.Client(), server.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestFetch500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.Client(), server.URL)
	if err == nil {
		t.Fatal("Fetch() should return error for 500")
	}
	var retryErr *RetryableError
	if !errors.As(err, &retryErr) {
		t.Errorf("Fetch() error should be RetryableError, got %T", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Fetch() error = %v, want ErrNetwork", err)
	}
}

func TestFetchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // Refuse connections

	_, err := Fetch(context.Background(), nil, url)
	if err == nil {
		t.Fatal("Fetch() should fail against a closed server")
	}
	var retryErr *RetryableError
	if !errors.As(err, &retryErr) {
		t.Errorf("Fetch() error should be RetryableError, got %T", err)
	}
}

func TestFetchTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), DefaultMaxBytes+1))
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.Client(), server.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Fetch() error = %v, want ErrTooLarge", err)
	}
	var retryErr *RetryableError
	if errors.As(err, &retryErr) {
		t.Error("ErrTooLarge should not be retryable")
	}
}

func TestFetchWithRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	data, err := FetchWithRetry(context.Background(), server.Client(), server.URL)
	if err != nil {
		t.Fatalf("FetchWithRetry() error: %v", err)
	}
	if string(data) != "recovered" {
		t.Errorf("FetchWithRetry() = %q", data)
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2", calls)
	}
}

func TestFetchWithRetryNotFoundStops(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchWithRetry(context.Background(), server.Client(), server.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchWithRetry() error = %v, want ErrNotFound", err)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1 (404 must not retry)", calls)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{
			name:    "200 OK",
			code:    200,
			wantErr: false,
		},
		{
			name:     "404 Not Found",
			code:     404,
			wantErr:  true,
			wantType: ErrNotFound,
		},
		{
			name:       "429 Too Many Requests",
			code:       429,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "500 Internal Server Error",
			code:       500,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "502 Bad Gateway",
			code:       502,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "503 Service Unavailable",
			code:       503,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:    "400 Bad Request",
			code:    400,
			wantErr: true,
		},
		{
			name:    "403 Forbidden",
			code:    403,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			var retryErr *RetryableError
			if got := errors.As(err, &retryErr); got != tt.isRetryErr {
				t.Errorf("retryable = %v, want %v", got, tt.isRetryErr)
			}
		})
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeedsFirstTry", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Errorf("Retry() error: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("nonRetryableStops", func(t *testing.T) {
		calls := 0
		wantErr := errors.New("permanent")
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return wantErr
		})
		if err != wantErr {
			t.Errorf("Retry() error = %v, want %v", err, wantErr)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("retryableExhaustsAttempts", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return &RetryableError{Err: errors.New("transient")}
		})
		if err == nil {
			t.Error("Retry() should return last error")
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("zeroAttemptsRunsOnce", func(t *testing.T) {
		calls := 0
		_ = Retry(ctx, 0, time.Millisecond, func() error {
			calls++
			return nil
		})
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("contextCancelStops", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		err := Retry(cancelled, 3, time.Minute, func() error {
			return &RetryableError{Err: errors.New("transient")}
		})
		if err != context.Canceled {
			t.Errorf("Retry() error = %v, want context.Canceled", err)
		}
	})
}
