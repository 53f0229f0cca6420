package observability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap/zapcore"
)

const betterStackQueueSize = 2048

// InitBetterStackLogger returns a logger that writes to stdout and ships entries at or
// above MinLevel to Better Stack in JSON-array batches. The returned func drains the queue.
func InitBetterStackLogger(cfg config.BetterStackConfig, level logging.Level) (*logging.Logger, func(context.Context) error, error) {
	if !cfg.Enabled {
		logger := logging.NewJSON(level)
		logger.Debug("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return logger, func(context.Context) error {
			if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
				return err
			}
			return nil
		}, nil
	}

	endpoint := normalizeBetterStackEndpoint(cfg.Endpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	shipper := newBetterStackShipper(endpoint, cfg)
	shippedCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig()),
		zapcore.AddSync(shipper),
		cfg.MinLevel,
	)
	logger := logging.New(logging.StdoutCore(level), shippedCore)
	logger.Info("betterstack enabled", "endpoint", endpoint, "min_level", cfg.MinLevel.String(), "batch_size", cfg.BatchSize)

	return logger, func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := shipper.Close(ctx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func normalizeBetterStackEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

// betterStackShipper is a zapcore.WriteSyncer. Write never blocks: lines are queued and a
// single goroutine posts them in batches of up to batchSize or every flushInterval.
type betterStackShipper struct {
	endpoint      string
	token         string
	client        *http.Client
	batchSize     int
	flushInterval time.Duration

	queue     chan []byte
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
	dropped   atomic.Uint64
}

func newBetterStackShipper(endpoint string, cfg config.BetterStackConfig) *betterStackShipper {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	batchSize := max(cfg.BatchSize, 1)
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	s := &betterStackShipper{
		endpoint:      endpoint,
		token:         strings.TrimSpace(cfg.Token),
		client:        &http.Client{Timeout: timeout},
		batchSize:     batchSize,
		flushInterval: flushInterval,
		queue:         make(chan []byte, betterStackQueueSize),
		done:          make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *betterStackShipper) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}

	// zap reuses its buffer after Write returns.
	copied := append([]byte(nil), line...)
	select {
	case s.queue <- copied:
	default:
		if dropped := s.dropped.Add(1); dropped == 1 || dropped%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full; dropped logs=%d\n", dropped)
		}
	}
	return len(p), nil
}

func (s *betterStackShipper) Sync() error {
	return nil
}

func (s *betterStackShipper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, s.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.send(batch)
		batch = batch[:0]
	}

	for {
		select {
		case line, ok := <-s.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, line)
			if len(batch) >= s.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (s *betterStackShipper) send(batch [][]byte) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('[')
	for i, line := range batch {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.Write(line)
	}
	_ = buf.WriteByte(']')

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(buf.B))
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack create request failed: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack send batch failed: entries=%d err=%v\n", len(batch), err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "betterstack send batch got status=%d entries=%d\n", resp.StatusCode, len(batch))
	}
}

func (s *betterStackShipper) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isIgnorableSyncError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") ||
		strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "inappropriate ioctl")
}
