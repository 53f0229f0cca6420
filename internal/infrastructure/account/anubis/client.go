package anubis

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
	"github.com/riskibarqy/prediction-league/internal/domain/user"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/platform/resilience"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

const (
	defaultIntrospectPath = "/v1/auth/introspect"
	defaultCacheTTL       = 30 * time.Second
	defaultCacheEntries   = 10_000
	maxResponseBytes      = 1 << 20
)

var errAnubisTransient = crerr.New("anubis transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	CacheTTL       time.Duration
	CacheEntries   int
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	cache         *principalCache
	breaker       *resilience.CircuitBreaker
	flight        resilience.SingleFlight
	logger        *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	path := cfg.IntrospectPath
	if strings.TrimSpace(path) == "" {
		path = defaultIntrospectPath
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	entries := cfg.CacheEntries
	if entries <= 0 {
		entries = defaultCacheEntries
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, path),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		cache:         newPrincipalCache(ttl, entries),
		breaker:       resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		logger:        logger.Named("anubis"),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if principal, ok := c.cache.Get(key); ok {
		return principal, nil
	}

	out, err, _ := c.flight.Do(key, func() (any, error) {
		var result introspectResult
		execErr := c.breaker.Execute(func() error {
			var callErr error
			result, callErr = c.introspect(ctx, token)
			return callErr
		}, isCircuitFailure)
		return result, execErr
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "anubis circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: session provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	result, _ := out.(introspectResult)
	c.cache.Set(key, result.principal, result.expiresAt)
	return result.principal, nil
}

type introspectResult struct {
	principal user.Principal
	expiresAt time.Time
}

func (c *Client) introspect(ctx context.Context, token string) (introspectResult, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return introspectResult{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return introspectResult{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return introspectResult{}, fmt.Errorf("%w: %w: request introspection: %v", usecase.ErrDependencyUnavailable, errAnubisTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return introspectResult{}, fmt.Errorf("%w: %w: read introspect response: %v", usecase.ErrDependencyUnavailable, errAnubisTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return introspectResult{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// 403 means our admin key was refused, not the caller's token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return introspectResult{}, fmt.Errorf("%w: session provider rejected service credentials", usecase.ErrDependencyUnavailable)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection unavailable", "status_code", resp.StatusCode)
		return introspectResult{}, fmt.Errorf("%w: %w: status %d", usecase.ErrDependencyUnavailable, errAnubisTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return introspectResult{}, fmt.Errorf("anubis introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return introspectResult{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}
	if !decoded.Active {
		return introspectResult{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return introspectResult{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	result := introspectResult{
		principal: user.Principal{
			UserID:      decoded.UserID,
			Email:       decoded.Email,
			DisplayName: decoded.Name,
			Roles:       append([]string(nil), decoded.Roles...),
		},
	}
	if decoded.Exp > 0 {
		result.expiresAt = time.Unix(decoded.Exp, 0)
	}
	return result, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
	Exp    int64    `json:"exp"`
}
