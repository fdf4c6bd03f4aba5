package calendar

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/platform/resilience"
)

func newTestClient(baseURL string, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Token:          "secret",
		Timeout:        time.Second,
		MaxRetries:     retries,
		Backoff:        time.Millisecond,
		Logger:         logging.NewNop(),
		Clock:          clockwork.NewFakeClock(),
		CircuitBreaker: breaker,
	})
}

func sampleRequest() match.CalendarRequest {
	return match.CalendarRequest{
		SeasonID:   "season-1",
		DivisionID: "division-1",
		TeamIDs:    []string{"team-a", "team-b"},
		StartDate:  time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		FieldIDs:   []string{"field-9"},
	}
}

func TestGenerateCalendar_SendsRequestAndDecodesMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/calendars" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}

		raw, _ := io.ReadAll(r.Body)
		var body calendarRequest
		if err := sonic.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.StartDate != "2025-03-02" || len(body.TeamIDs) != 2 || body.FieldIDs[0] != "field-9" {
			t.Errorf("unexpected request body %+v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches":[{"homeTeamId":"team-a","awayTeamId":"team-b","round":1,"matchDate":"2025-03-02","matchTime":"10:00","fieldId":"field-9"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.DefaultCircuitBreakerConfig())
	items, err := client.GenerateCalendar(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("generate calendar: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}

	got := items[0]
	if got.ID != "" {
		t.Fatalf("client must not assign ids, got %q", got.ID)
	}
	if got.SeasonID != "season-1" || got.DivisionID != "division-1" {
		t.Fatalf("unexpected scope: %+v", got)
	}
	if got.Status != match.StatusScheduled || got.Round != 1 || got.FieldID != "field-9" {
		t.Fatalf("unexpected match: %+v", got)
	}
	if !got.MatchDate.Equal(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected match date: %v", got.MatchDate)
	}
}

func TestGenerateCalendar_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2, resilience.DefaultCircuitBreakerConfig())
	items, err := client.GenerateCalendar(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("generate calendar: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty slate, got %d", len(items))
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestGenerateCalendar_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"odd team count"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3, resilience.DefaultCircuitBreakerConfig())
	_, err := client.GenerateCalendar(context.Background(), sampleRequest())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !crerr.Is(err, errCalendarRejected) {
		t.Fatalf("expected rejected error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestGenerateCalendar_OpensCircuitAfterTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.GenerateCalendar(context.Background(), sampleRequest()); err == nil {
			t.Fatalf("expected failure on call %d", i+1)
		}
	}

	_, err := client.GenerateCalendar(context.Background(), sampleRequest())
	if !crerr.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected open circuit to skip the server, got %d calls", calls.Load())
	}
}

func TestGenerateCalendar_RequiresBaseURL(t *testing.T) {
	client := newTestClient("", 0, resilience.DefaultCircuitBreakerConfig())
	if _, err := client.GenerateCalendar(context.Background(), sampleRequest()); err == nil {
		t.Fatalf("expected missing base url error")
	}
}
