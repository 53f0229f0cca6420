package anubis

import (
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/user"
)

func TestPrincipalCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"}, time.Time{})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if principal.UserID != "u-1" {
		t.Fatalf("unexpected user id: got=%s want=u-1", principal.UserID)
	}
}

func TestPrincipalCache_RespectsTokenExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC)
	cache := newPrincipalCache(time.Hour, 10)
	cache.now = func() time.Time { return now }

	cache.Set("short", user.Principal{UserID: "u-1"}, now.Add(time.Minute))
	cache.Set("gone", user.Principal{UserID: "u-2"}, now.Add(-time.Second))

	if _, ok := cache.Get("gone"); ok {
		t.Fatalf("expired token must not be cached")
	}
	if _, ok := cache.Get("short"); !ok {
		t.Fatalf("expected hit before token expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("short"); ok {
		t.Fatalf("expected miss after token expiry")
	}
}

func TestPrincipalCache_EvictsAtCapacity(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 2)
	cache.Set("a", user.Principal{UserID: "a"}, time.Time{})
	cache.Set("b", user.Principal{UserID: "b"}, time.Time{})
	cache.Set("c", user.Principal{UserID: "c"}, time.Time{})

	if got := len(cache.entries); got != 2 {
		t.Fatalf("unexpected entry count: got=%d want=2", got)
	}
	if _, ok := cache.Get("c"); !ok {
		t.Fatalf("latest entry should survive eviction")
	}
}
