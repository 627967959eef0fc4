package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/northbank/supporters-api/internal/platform/logging"
	"github.com/northbank/supporters-api/internal/platform/resilience"
)

func newTestClient(t *testing.T, serverURL, apiKey string, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		HTTPClient:     &http.Client{Timeout: 5 * time.Second},
		BaseURL:        serverURL,
		Host:           "test-host",
		APIKey:         apiKey,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func disabledBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{Enabled: false}
}

func TestClientMissingAPIKeySkipsRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without an api key")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "", 0, disabledBreaker())

	payload, err := client.NextFixtures(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload, got %v", payload)
	}
}

func TestClientSendsProviderHeadersAndParams(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-rapidapi-host"); got != "test-host" {
			t.Errorf("unexpected host header: %q", got)
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "secret" {
			t.Errorf("unexpected key header: %q", got)
		}
		if r.URL.Path != "/fixtures" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("team") != "42" || q.Get("next") != "10" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"get":"fixtures","errors":[],"results":1,"response":[{"fixture":{"id":555}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret", 0, disabledBreaker())

	payload, err := client.NextFixtures(context.Background(), 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected one item, got %d", len(payload))
	}
}

func TestClientEmptyResponseIsValid(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"get":"standings","errors":[],"results":0,"response":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret", 0, disabledBreaker())

	payload, err := client.Standings(context.Background(), 39, 2025)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if payload == nil || len(payload) != 0 {
		t.Fatalf("expected empty non-nil payload, got %v", payload)
	}
}

func TestClientProviderErrorsFail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"error map", `{"get":"fixtures","errors":{"token":"Invalid API key"},"results":0,"response":[]}`},
		{"error list", `{"get":"fixtures","errors":["rate limit reached"],"results":0,"response":[]}`},
		{"error string", `{"get":"fixtures","errors":"something broke","results":0,"response":[]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, "secret", 0, disabledBreaker())
			if _, err := client.FixtureByID(context.Background(), 555); err == nil {
				t.Fatal("expected provider errors to fail the call")
			}
		})
	}
}

func TestClientMissingResponseFieldFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"get":"fixtures","errors":[],"results":0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret", 0, disabledBreaker())
	if _, err := client.FixtureByID(context.Background(), 555); err == nil {
		t.Fatal("expected missing response field to fail the call")
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"get":"fixtures","errors":[],"results":1,"response":[{"fixture":{"id":1}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret", 1, disabledBreaker())

	payload, err := client.LiveFixtures(context.Background())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected one item, got %d", len(payload))
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClientDoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret", 2, disabledBreaker())

	if _, err := client.FixtureByID(context.Background(), 1); err == nil {
		t.Fatal("expected 404 to fail the call")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single attempt for a 4xx, got %d", got)
	}
}

func TestClientCircuitBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret", 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	if _, err := client.FixtureByID(context.Background(), 1); err == nil {
		t.Fatal("expected first call to fail")
	}
	requestsAfterFirst := hits.Load()

	_, err := client.FixtureByID(context.Background(), 1)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable from open breaker, got %v", err)
	}
	if hits.Load() != requestsAfterFirst {
		t.Fatal("open breaker must not reach the provider")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	if !isRetryableStatus(http.StatusTooManyRequests) {
		t.Fatal("429 should be retryable")
	}
	if !isRetryableStatus(http.StatusBadGateway) {
		t.Fatal("502 should be retryable")
	}
	if isRetryableStatus(http.StatusBadRequest) {
		t.Fatal("400 should not be retryable")
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("dial failed for key=super-secret", "super-secret")
	if got != "dial failed for key=REDACTED" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}
