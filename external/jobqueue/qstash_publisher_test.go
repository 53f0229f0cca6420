package jobqueue

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/platform/resilience"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func TestQStashPublisher_EnqueueSendsUpstashHeaders(t *testing.T) {
	t.Parallel()

	var (
		gotPath   string
		gotHeader http.Header
		gotBody   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"msg_1"}`))
	}))
	defer srv.Close()

	publisher, err := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          srv.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.example.com/",
		Retries:          3,
		InternalJobToken: "job-token",
	}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	payload := map[string]any{"competition_id": "eng-premier-league-2026"}
	err = publisher.Enqueue(context.Background(), "v1/internal/jobs/sync-live", payload, 90*time.Second, "sync-live-epl-1")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/v2/publish/") || !strings.HasSuffix(gotPath, "/v1/internal/jobs/sync-live") {
		t.Fatalf("unexpected publish path: got=%s", gotPath)
	}
	checks := map[string]string{
		"Authorization":            "Bearer qstash-token",
		"Upstash-Method":           "POST",
		"Upstash-Retries":          "3",
		"Upstash-Delay":            "90s",
		"Upstash-Deduplication-Id": "sync-live-epl-1",
		forwardJobTokenKey:         "job-token",
	}
	for key, want := range checks {
		if got := gotHeader.Get(key); got != want {
			t.Fatalf("unexpected header %s: got=%q want=%q", key, got, want)
		}
	}
	if gotBody != `{"competition_id":"eng-premier-league-2026"}` {
		t.Fatalf("unexpected body: got=%s", gotBody)
	}
}

func TestQStashPublisher_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	publisher, err := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       srv.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://api.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	if err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/sync-live", nil, 0, ""); err == nil {
		t.Fatalf("expected first publish to fail")
	}
	err = publisher.Enqueue(context.Background(), "/v1/internal/jobs/sync-live", nil, 0, "")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("unexpected call count: got=%d want=1", got)
	}
}

func TestQStashPublisher_ClientErrorDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid destination"}`))
	}))
	defer srv.Close()

	publisher, err := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       srv.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://api.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	for i := 0; i < 2; i++ {
		err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/bootstrap", nil, 0, "")
		if err == nil || !strings.Contains(err.Error(), "status=400") {
			t.Fatalf("expected status error on attempt %d, got %v", i, err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("unexpected call count: got=%d want=2", got)
	}
}

func TestNewQStashPublisher_RejectsBadTarget(t *testing.T) {
	t.Parallel()

	_, err := NewQStashPublisher(QStashPublisherConfig{Token: "t", TargetBaseURL: "ftp://example.com"}, nil)
	if err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestCurlPreviewMasksSecrets(t *testing.T) {
	t.Parallel()

	publisher, err := NewQStashPublisher(QStashPublisherConfig{
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.example.com",
		InternalJobToken: "job-token",
	}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	preview := publisher.curlPreview(publishMessage{
		publishURL: "https://qstash.upstash.io/v2/publish/https://api.example.com/v1/internal/jobs/sync-live",
		path:       "/v1/internal/jobs/sync-live",
		delay:      "0s",
		body:       []byte(`{"competition_id":"it's"}`),
	})
	if strings.Contains(preview, "qstash-token") || strings.Contains(preview, "job-token") {
		t.Fatalf("preview leaked a secret: %s", preview)
	}
	if strings.Contains(preview, "Upstash-Delay") {
		t.Fatalf("zero delay should not be previewed: %s", preview)
	}
	if !strings.Contains(preview, `'{"competition_id":"it'"'"'s"}'`) {
		t.Fatalf("body was not shell quoted: %s", preview)
	}
}

func TestFormatDelay(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]string{
		-time.Second:            "0s",
		0:                       "0s",
		1400 * time.Millisecond: "1s",
		10 * time.Minute:        "600s",
	}
	for in, want := range cases {
		if got := formatDelay(in); got != want {
			t.Fatalf("formatDelay(%s): got=%s want=%s", in, got, want)
		}
	}
}
