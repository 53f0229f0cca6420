package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/setting"
)

func TestSettingService_DefaultsWhenNothingStored(t *testing.T) {
	t.Parallel()

	service := NewSettingService(newStubSettingRepository(), DefaultSettingDefaults(), nil)

	rules, err := service.ScoringRules(context.Background())
	if err != nil {
		t.Fatalf("scoring rules: %v", err)
	}
	if rules.ExactScorePoints != 3 || rules.CorrectOutcomePoints != 1 || rules.MissPoints != 0 {
		t.Fatalf("unexpected default rules: %+v", rules)
	}

	opts, err := service.LiveSyncOptions(context.Background())
	if err != nil {
		t.Fatalf("live sync options: %v", err)
	}
	if !opts.Enabled {
		t.Fatalf("expected live sync enabled by default")
	}
	if got := opts.AutoFinishAfter(competition.SportRugby); got != 135*time.Minute {
		t.Fatalf("unexpected rugby auto finish: got=%s want=%s", got, 135*time.Minute)
	}
	if opts.MatchThreshold != 0.75 {
		t.Fatalf("unexpected threshold: got=%v want=0.75", opts.MatchThreshold)
	}

	views, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if len(views) != len(setting.Definitions) {
		t.Fatalf("unexpected view count: got=%d want=%d", len(views), len(setting.Definitions))
	}
	for _, v := range views {
		if v.Overridden || v.Value != v.Default {
			t.Fatalf("expected defaults only, got=%+v", v)
		}
	}
}

func TestSettingService_SetCanonicalizesAndOverrides(t *testing.T) {
	t.Parallel()

	service := NewSettingService(newStubSettingRepository(), DefaultSettingDefaults(), nil)
	ctx := context.Background()

	view, err := service.Set(ctx, setting.KeyLiveSyncAutoFinishFootball, " 140m ", "admin-1")
	if err != nil {
		t.Fatalf("set duration: %v", err)
	}
	if view.Value != "2h20m0s" || !view.Overridden || view.UpdatedBy != "admin-1" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if _, err := service.Set(ctx, setting.KeyLiveSyncEnabled, "FALSE", "admin-1"); err != nil {
		t.Fatalf("set bool: %v", err)
	}
	if _, err := service.Set(ctx, setting.KeyScoringExactPoints, "5", "admin-1"); err != nil {
		t.Fatalf("set exact points: %v", err)
	}

	opts, err := service.LiveSyncOptions(ctx)
	if err != nil {
		t.Fatalf("live sync options: %v", err)
	}
	if opts.Enabled {
		t.Fatalf("expected live sync disabled")
	}
	if got := opts.AutoFinishAfter(competition.SportFootball); got != 140*time.Minute {
		t.Fatalf("unexpected football auto finish: got=%s", got)
	}

	rules, err := service.ScoringRules(ctx)
	if err != nil {
		t.Fatalf("scoring rules: %v", err)
	}
	if rules.ExactScorePoints != 5 {
		t.Fatalf("unexpected exact points: got=%d want=5", rules.ExactScorePoints)
	}
}

func TestSettingService_SetRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown key", key: "scoring.bonus", value: "1"},
		{name: "negative int", key: setting.KeyScoringMissPoints, value: "-1"},
		{name: "not a bool", key: setting.KeyLiveSyncEnabled, value: "maybe"},
		{name: "zero duration", key: setting.KeyLiveSyncAutoFinishRugby, value: "0s"},
		{name: "ratio above one", key: setting.KeyLiveSyncMatchThreshold, value: "1.2"},
		{name: "ratio zero", key: setting.KeyLiveSyncMatchThreshold, value: "0"},
		{name: "ratio not a number", key: setting.KeyLiveSyncMatchThreshold, value: "NaN"},
		{name: "ratio infinite", key: setting.KeyLiveSyncMatchThreshold, value: "+Inf"},
		{name: "outcome above exact", key: setting.KeyScoringOutcomePoints, value: "4"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := NewSettingService(newStubSettingRepository(), DefaultSettingDefaults(), nil)
			_, err := service.Set(context.Background(), tc.key, tc.value, "admin")
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("unexpected error: got=%v want=%v", err, ErrInvalidInput)
			}
		})
	}
}

func TestSettingService_GetUnknownKey(t *testing.T) {
	t.Parallel()

	service := NewSettingService(newStubSettingRepository(), DefaultSettingDefaults(), nil)
	if _, err := service.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error: got=%v want=%v", err, ErrNotFound)
	}
}

func TestSettingService_IgnoresCorruptStoredValue(t *testing.T) {
	t.Parallel()

	repo := newStubSettingRepository()
	_ = repo.Upsert(context.Background(), setting.Setting{Key: setting.KeyScoringExactPoints, Value: "lots"})
	service := NewSettingService(repo, DefaultSettingDefaults(), nil)

	rules, err := service.ScoringRules(context.Background())
	if err != nil {
		t.Fatalf("scoring rules: %v", err)
	}
	if rules.ExactScorePoints != 3 {
		t.Fatalf("expected fallback to default: got=%d", rules.ExactScorePoints)
	}
}

func TestSettingService_IgnoresNonFiniteStoredThreshold(t *testing.T) {
	t.Parallel()

	repo := newStubSettingRepository()
	_ = repo.Upsert(context.Background(), setting.Setting{Key: setting.KeyLiveSyncMatchThreshold, Value: "NaN"})
	defaults := DefaultSettingDefaults()
	service := NewSettingService(repo, defaults, nil)

	opts, err := service.LiveSyncOptions(context.Background())
	if err != nil {
		t.Fatalf("live sync options: %v", err)
	}
	if opts.MatchThreshold != defaults.MatchThreshold {
		t.Fatalf("unexpected threshold: got=%v want=%v", opts.MatchThreshold, defaults.MatchThreshold)
	}
}
