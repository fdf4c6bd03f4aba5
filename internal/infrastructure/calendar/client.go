// Package calendar talks to the external calendar-generation service. It
// carries requests and results only; pairing and field allocation happen
// remotely.
package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	calendarsPath   = "/v1/calendars"
	dateLayout      = "2006-01-02"
	maxResponseSize = 4 << 20
)

var (
	errCalendarTransient = crerr.New("calendar service transient failure")
	errCalendarRejected  = crerr.New("calendar service rejected request")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	Logger         *logging.Logger
	Clock          clockwork.Clock
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, cfg.Clock),
	}
}

type calendarRequest struct {
	SeasonID   string   `json:"seasonId"`
	DivisionID string   `json:"divisionId"`
	TeamIDs    []string `json:"teamIds"`
	StartDate  string   `json:"startDate"`
	FieldIDs   []string `json:"fieldIds"`
}

type calendarResponse struct {
	Matches []generatedMatch `json:"matches"`
}

type generatedMatch struct {
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	Round        int    `json:"round"`
	MatchDate    string `json:"matchDate"`
	MatchTime    string `json:"matchTime"`
	FieldID      string `json:"fieldId"`
	IsPlayoff    bool   `json:"isPlayoff"`
	PlayoffStage string `json:"playoffStage"`
}

// GenerateCalendar asks the remote service for a slate of fixtures. The
// returned matches carry no id; the caller assigns ids and persists them.
func (c *Client) GenerateCalendar(ctx context.Context, req match.CalendarRequest) ([]match.Match, error) {
	ctx, span := otel.Tracer("league-console/internal/infrastructure/calendar").Start(ctx, "calendar.GenerateCalendar")
	defer span.End()
	span.SetAttributes(
		attribute.String("season.id", req.SeasonID),
		attribute.String("division.id", req.DivisionID),
		attribute.Int("calendar.teams", len(req.TeamIDs)),
	)

	if c.baseURL == "" {
		return nil, crerr.New("calendar service base url is not configured")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	payload := calendarRequest{
		SeasonID:   req.SeasonID,
		DivisionID: req.DivisionID,
		TeamIDs:    nonNil(req.TeamIDs),
		StartDate:  req.StartDate.Format(dateLayout),
		FieldIDs:   nonNil(req.FieldIDs),
	}
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, crerr.Wrap(err, "encode calendar request")
	}

	var raw []byte
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		var callErr error
		raw, callErr = c.post(ctx, buf.B)
		return callErr
	}, isTransient)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WarnContext(ctx, "calendar generation failed",
			"season_id", req.SeasonID,
			"division_id", req.DivisionID,
			"breaker_state", c.breaker.State(),
			"error", err,
		)
		return nil, crerr.Wrap(err, "generate calendar")
	}

	var decoded calendarResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, crerr.Wrap(err, "decode calendar response")
	}

	out := make([]match.Match, 0, len(decoded.Matches))
	for idx, item := range decoded.Matches {
		date, err := parseMatchDate(item.MatchDate)
		if err != nil {
			return nil, crerr.Wrapf(err, "calendar match %d", idx)
		}
		out = append(out, match.Match{
			SeasonID:     req.SeasonID,
			DivisionID:   req.DivisionID,
			HomeTeamID:   item.HomeTeamID,
			AwayTeamID:   item.AwayTeamID,
			FieldID:      item.FieldID,
			Round:        item.Round,
			MatchDate:    date,
			MatchTime:    item.MatchTime,
			Status:       match.StatusScheduled,
			IsPlayoff:    item.IsPlayoff,
			PlayoffStage: item.PlayoffStage,
		})
	}

	c.logger.InfoContext(ctx, "calendar generated", "division_id", req.DivisionID, "matches", len(out))
	return out, nil
}

// post sends body with bounded retries on transport errors, 429 and 5xx.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.postOnce(ctx, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, crerr.Mark(ctx.Err(), errCalendarTransient)
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func (c *Client) postOnce(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+calendarsPath, bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "build calendar request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send calendar request"), errCalendarTransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read calendar response"), errCalendarTransient)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case isRetryableStatus(resp.StatusCode):
		return nil, crerr.Mark(
			crerr.Newf("calendar service status=%d body=%s", resp.StatusCode, abbreviate(raw)),
			errCalendarTransient,
		)
	default:
		return nil, crerr.Mark(
			crerr.Newf("calendar service status=%d body=%s", resp.StatusCode, abbreviate(raw)),
			errCalendarRejected,
		)
	}
}

func isTransient(err error) bool {
	return crerr.Is(err, errCalendarTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func parseMatchDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid match date %q", raw)
	}
	return t, nil
}

func abbreviate(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 256 {
		return text[:256] + "..."
	}
	return text
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
