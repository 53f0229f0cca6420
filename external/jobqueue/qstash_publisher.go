package jobqueue

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/platform/resilience"
	"github.com/riskibarqy/prediction-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultQStashBaseURL = "https://qstash.upstash.io"
	maxLoggedBody        = 4096
	forwardJobTokenKey   = "Upstash-Forward-X-Internal-Job-Token"
)

var errQStashTransient = crerr.New("qstash transient failure")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher schedules internal job callbacks through Upstash QStash.
// QStash calls TargetBaseURL+path after the requested delay.
type QStashPublisher struct {
	client           *http.Client
	publishBaseURL   string
	targetBaseURL    string
	token            string
	retries          int
	internalJobToken string
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
}

var _ usecase.JobQueue = (*QStashPublisher)(nil)

// NewQStashPublisher validates both base URLs up front so a bad deployment fails at boot.
func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) (*QStashPublisher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rawBase := strings.TrimSpace(cfg.BaseURL)
	if rawBase == "" {
		rawBase = defaultQStashBaseURL
	}
	publishBaseURL, err := validateHTTPBaseURL(rawBase)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(cfg.TargetBaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, crerr.New("qstash token is required")
	}

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		publishBaseURL:   publishBaseURL,
		targetBaseURL:    targetBaseURL,
		token:            strings.TrimSpace(cfg.Token),
		retries:          max(cfg.Retries, 0),
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		logger:           logger.Named("qstash"),
		breaker:          resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}, nil
}

// Enqueue publishes one delayed POST to path. A non-empty deduplicationID makes
// QStash drop repeats of the same slot.
func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return fmt.Errorf("%w: job path is required", usecase.ErrInvalidInput)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}

	msg := publishMessage{
		targetURL:       p.targetBaseURL + path,
		path:            path,
		delay:           formatDelay(delay),
		deduplicationID: strings.TrimSpace(deduplicationID),
		body:            body,
	}
	msg.publishURL = p.publishBaseURL + "/v2/publish/" + msg.targetURL

	preview := p.curlPreview(msg)
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.target_url", msg.targetURL),
			attribute.String("qstash.path", path),
			attribute.String("qstash.delay", msg.delay),
			attribute.String("qstash.deduplication_id", msg.deduplicationID),
			attribute.String("qstash.request_curl_preview", preview),
		)
	}
	p.logger.DebugContext(ctx, "qstash publish request", "path", path, "curl_preview", preview)

	err = p.breaker.Execute(func() error {
		return p.publish(ctx, msg)
	}, isQStashCircuitFailure)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", p.breaker.State(), "path", path)
			return fmt.Errorf("%w: job queue is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	p.logger.InfoContext(ctx, "qstash job published", "path", path, "delay", msg.delay, "deduplication_id", msg.deduplicationID)
	return nil
}

type publishMessage struct {
	publishURL      string
	targetURL       string
	path            string
	delay           string
	deduplicationID string
	body            []byte
}

func (p *QStashPublisher) publish(ctx context.Context, msg publishMessage) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msg.publishURL, bytes.NewReader(msg.body))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	for _, h := range p.headers(msg) {
		req.Header.Set(h.key, h.value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return crerr.Wrapf(errQStashTransient, "publish job path=%s: %v", msg.path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	if isQStashRetryableStatus(resp.StatusCode) {
		return crerr.Wrapf(errQStashTransient, "publish job path=%s status=%d body=%s", msg.path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return crerr.Newf("publish job path=%s status=%d body=%s", msg.path, resp.StatusCode, strings.TrimSpace(string(raw)))
}

type header struct {
	key   string
	value string
}

// headers lists the request headers in send order; curlPreview masks the secret ones.
func (p *QStashPublisher) headers(msg publishMessage) []header {
	out := []header{
		{key: "Authorization", value: "Bearer " + p.token},
		{key: "Content-Type", value: "application/json"},
		{key: "Upstash-Method", value: http.MethodPost},
	}
	if p.retries > 0 {
		out = append(out, header{key: "Upstash-Retries", value: strconv.Itoa(p.retries)})
	}
	if msg.delay != "0s" {
		out = append(out, header{key: "Upstash-Delay", value: msg.delay})
	}
	if msg.deduplicationID != "" {
		out = append(out, header{key: "Upstash-Deduplication-Id", value: msg.deduplicationID})
	}
	if p.internalJobToken != "" {
		out = append(out, header{key: forwardJobTokenKey, value: p.internalJobToken})
	}
	return out
}

func (p *QStashPublisher) curlPreview(msg publishMessage) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	write := func(parts ...string) {
		for _, part := range parts {
			if buf.Len() > 0 {
				_ = buf.WriteByte(' ')
			}
			_, _ = buf.WriteString(part)
		}
	}

	write("curl", "-X", "POST", shellQuote(msg.publishURL))
	for _, h := range p.headers(msg) {
		value := h.value
		switch h.key {
		case "Authorization":
			value = "Bearer ***"
		case forwardJobTokenKey:
			value = "***"
		}
		write("-H", shellQuote(h.key+": "+value))
	}
	write("-d", shellQuote(truncateForLog(string(msg.body), maxLoggedBody)))

	return buf.String()
}

func formatDelay(delay time.Duration) string {
	seconds := int64(delay.Round(time.Second) / time.Second)
	if seconds <= 0 {
		return "0s"
	}
	return strconv.FormatInt(seconds, 10) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "...(truncated)"
}

func isQStashCircuitFailure(err error) bool {
	return stderrors.Is(err, errQStashTransient)
}

func isQStashRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
