package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/platform/resilience"
	"github.com/riskibarqy/prediction-league/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL      = "https://api.football-data.org/v4"
	defaultTimeout      = 15 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 6 << 20
	authHeader          = "X-Auth-Token"
	dateLayout          = "2006-01-02"
	maxErrorBodyRunes   = 240
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads match lists from football-data.org v4.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	token        string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "prediction-league",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger.Named("footballdata"),
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

// FetchMatches lists a competition's matches whose UTC date falls inside [from, to].
func (c *Client) FetchMatches(ctx context.Context, competitionCode string, from, to time.Time) (usecase.ExternalMatchBatch, error) {
	code := strings.ToUpper(strings.TrimSpace(competitionCode))
	if code == "" {
		return usecase.ExternalMatchBatch{}, fmt.Errorf("%w: competition code is required", usecase.ErrInvalidInput)
	}
	if to.Before(from) {
		return usecase.ExternalMatchBatch{}, fmt.Errorf("%w: date range end before start", usecase.ErrInvalidInput)
	}

	path := "/competitions/" + url.PathEscape(code) + "/matches"
	query := url.Values{}
	query.Set("dateFrom", from.UTC().Format(dateLayout))
	query.Set("dateTo", to.UTC().Format(dateLayout))
	endpoint := path + "?" + query.Encode()

	var envelope matchesEnvelope
	raw, err := c.doJSON(ctx, endpoint, &envelope)
	if err != nil {
		return usecase.ExternalMatchBatch{}, fmt.Errorf("fetch matches competition=%s: %w", code, err)
	}

	matches := make([]usecase.ExternalMatch, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		match, ok := mapMatch(item, code)
		if !ok {
			c.logger.DebugContext(ctx, "skip match without id or kickoff", "competition", code, "match_id", item.ID)
			continue
		}
		matches = append(matches, match)
	}

	return usecase.ExternalMatchBatch{
		Matches:  matches,
		Endpoint: endpoint,
		Raw:      raw,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, target any) ([]byte, error) {
	out, err, _ := c.flight.Do(endpoint, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			body, reqErr := c.executeRequest(ctx, c.baseURL+endpoint)
			raw = body
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: score provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, crerr.Wrap(err, "decode provider payload")
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.do(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Wrapf(errFootballDataTransient, "send request: %s", sanitizeSensitiveText(err.Error(), c.token))
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = crerr.Wrapf(errFootballDataTransient, "provider status=%d body=%s", status, abbreviateBody(raw, c.token))
		default:
			return nil, crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw, c.token))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(authHeader, c.token)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, 0, context.DeadlineExceeded
	}

	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	if remaining := resp.Header.Peek("X-Requests-Available-Minute"); len(remaining) > 0 {
		c.logger.DebugContext(ctx, "football-data quota", "requests_available_minute", string(remaining))
	}
	return body, resp.StatusCode(), nil
}

func mapMatch(item matchItem, code string) (usecase.ExternalMatch, bool) {
	if item.ID <= 0 {
		return usecase.ExternalMatch{}, false
	}
	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(item.UTCDate))
	if err != nil {
		return usecase.ExternalMatch{}, false
	}

	out := usecase.ExternalMatch{
		ID:              item.ID,
		CompetitionCode: firstNonEmpty(item.Competition.Code, code),
		HomeTeamID:      derefInt64(item.HomeTeam.ID),
		HomeTeamName:    firstNonEmpty(item.HomeTeam.Name, item.HomeTeam.ShortName),
		AwayTeamID:      derefInt64(item.AwayTeam.ID),
		AwayTeamName:    firstNonEmpty(item.AwayTeam.Name, item.AwayTeam.ShortName),
		KickoffAt:       kickoff.UTC(),
		Status:          strings.ToUpper(strings.TrimSpace(item.Status)),
		Minute:          formatMinute(item.Minute, item.InjuryTime),
	}
	if item.Matchday != nil {
		out.Matchday = *item.Matchday
	}
	if updated, err := time.Parse(time.RFC3339, strings.TrimSpace(item.LastUpdated)); err == nil {
		out.LastUpdated = updated.UTC()
	}
	out.HomeScore, out.AwayScore = pickScore(item.Score)

	return out, true
}

// pickScore prefers the full-time pair and falls back to half-time while the first half is on.
func pickScore(s score) (*int, *int) {
	if s.FullTime.Home != nil && s.FullTime.Away != nil {
		return s.FullTime.Home, s.FullTime.Away
	}
	if s.HalfTime.Home != nil && s.HalfTime.Away != nil {
		return s.HalfTime.Home, s.HalfTime.Away
	}
	return nil, nil
}

func formatMinute(raw any, injuryTime *int) string {
	var minute string
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		minute = strings.TrimSpace(v)
	case float64:
		minute = strconv.Itoa(int(v))
	case int64:
		minute = strconv.FormatInt(v, 10)
	case int:
		minute = strconv.Itoa(v)
	default:
		minute = strings.TrimSpace(fmt.Sprint(v))
	}
	if minute != "" && injuryTime != nil && *injuryTime > 0 {
		minute += "+" + strconv.Itoa(*injuryTime)
	}
	return minute
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errFootballDataTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func abbreviateBody(body []byte, token string) string {
	var parsed apiError
	if err := sonic.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return sanitizeSensitiveText(parsed.Message, token)
	}
	text := sanitizeSensitiveText(string(body), token)
	runes := 0
	for i := range text {
		if runes == maxErrorBodyRunes {
			return text[:i] + "..."
		}
		runes++
	}
	return text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
