package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/riskibarqy/prediction-league/internal/domain/setting"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
)

type SettingDefaults struct {
	Scoring            scoring.Rules
	LiveSyncEnabled    bool
	AutoFinishFootball time.Duration
	AutoFinishRugby    time.Duration
	MatchThreshold     float64
}

func DefaultSettingDefaults() SettingDefaults {
	return SettingDefaults{
		Scoring:            scoring.DefaultRules(),
		LiveSyncEnabled:    true,
		AutoFinishFootball: 150 * time.Minute,
		AutoFinishRugby:    135 * time.Minute,
		MatchThreshold:     0.75,
	}
}

// LiveSyncOptions are the admin-tunable knobs of the live sync run.
type LiveSyncOptions struct {
	Enabled        bool
	AutoFinish     map[string]time.Duration
	MatchThreshold float64
}

func (o LiveSyncOptions) AutoFinishAfter(sport string) time.Duration {
	if d, ok := o.AutoFinish[competition.NormalizeSport(sport)]; ok && d > 0 {
		return d
	}
	return DefaultSettingDefaults().AutoFinishFootball
}

type SettingView struct {
	Key         string            `json:"key"`
	Value       string            `json:"value"`
	Default     string            `json:"default"`
	Type        setting.ValueType `json:"type"`
	Description string            `json:"description"`
	Overridden  bool              `json:"overridden"`
	UpdatedBy   string            `json:"updated_by,omitempty"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

type SettingService struct {
	repo     setting.Repository
	defaults SettingDefaults
	logger   *logging.Logger
	now      func() time.Time
}

func NewSettingService(repo setting.Repository, defaults SettingDefaults, logger *logging.Logger) *SettingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingService{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *SettingService) List(ctx context.Context) ([]SettingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingService.List")
	defer span.End()

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	byKey := make(map[string]setting.Setting, len(stored))
	for _, item := range stored {
		byKey[item.Key] = item
	}

	out := make([]SettingView, 0, len(setting.Definitions))
	for _, def := range setting.Definitions {
		item, ok := byKey[def.Key]
		out = append(out, s.view(def, item, ok))
	}
	return out, nil
}

func (s *SettingService) Get(ctx context.Context, key string) (SettingView, error) {
	def, ok := setting.Lookup(strings.TrimSpace(key))
	if !ok {
		return SettingView{}, fmt.Errorf("%w: unknown setting %q", ErrNotFound, key)
	}
	item, exists, err := s.repo.Get(ctx, def.Key)
	if err != nil {
		return SettingView{}, fmt.Errorf("get setting %s: %w", def.Key, err)
	}
	return s.view(def, item, exists), nil
}

func (s *SettingService) Set(ctx context.Context, key, value, updatedBy string) (SettingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingService.Set")
	defer span.End()

	def, ok := setting.Lookup(strings.TrimSpace(key))
	if !ok {
		return SettingView{}, fmt.Errorf("%w: unknown setting %q", ErrInvalidInput, key)
	}
	canonical, err := canonicalSettingValue(def.Type, value)
	if err != nil {
		return SettingView{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, def.Key, err)
	}

	if isScoringKey(def.Key) {
		rules, err := s.ScoringRules(ctx)
		if err != nil {
			return SettingView{}, err
		}
		n, _ := strconv.Atoi(canonical)
		switch def.Key {
		case setting.KeyScoringExactPoints:
			rules.ExactScorePoints = n
		case setting.KeyScoringOutcomePoints:
			rules.CorrectOutcomePoints = n
		case setting.KeyScoringMissPoints:
			rules.MissPoints = n
		}
		if err := rules.Validate(); err != nil {
			return SettingView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	item := setting.Setting{
		Key:       def.Key,
		Value:     canonical,
		UpdatedBy: strings.TrimSpace(updatedBy),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return SettingView{}, fmt.Errorf("upsert setting %s: %w", def.Key, err)
	}
	s.logger.InfoContext(ctx, "setting updated", "key", def.Key, "value", canonical, "updated_by", item.UpdatedBy)
	return s.view(def, item, true), nil
}

// ScoringRules returns the rules in effect, applying stored overrides on top of defaults.
func (s *SettingService) ScoringRules(ctx context.Context) (scoring.Rules, error) {
	values, err := s.values(ctx)
	if err != nil {
		return scoring.Rules{}, err
	}
	rules := s.defaults.Scoring
	rules.ExactScorePoints = s.intValue(ctx, values, setting.KeyScoringExactPoints, rules.ExactScorePoints)
	rules.CorrectOutcomePoints = s.intValue(ctx, values, setting.KeyScoringOutcomePoints, rules.CorrectOutcomePoints)
	rules.MissPoints = s.intValue(ctx, values, setting.KeyScoringMissPoints, rules.MissPoints)
	return rules, nil
}

func (s *SettingService) LiveSyncOptions(ctx context.Context) (LiveSyncOptions, error) {
	values, err := s.values(ctx)
	if err != nil {
		return LiveSyncOptions{}, err
	}

	opts := LiveSyncOptions{
		Enabled: s.defaults.LiveSyncEnabled,
		AutoFinish: map[string]time.Duration{
			competition.SportFootball: s.defaults.AutoFinishFootball,
			competition.SportRugby:    s.defaults.AutoFinishRugby,
		},
		MatchThreshold: s.defaults.MatchThreshold,
	}
	if raw, ok := values[setting.KeyLiveSyncEnabled]; ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			opts.Enabled = v
		} else {
			s.logger.WarnContext(ctx, "ignore invalid stored setting", "key", setting.KeyLiveSyncEnabled, "error", err)
		}
	}
	opts.AutoFinish[competition.SportFootball] = s.durationValue(ctx, values, setting.KeyLiveSyncAutoFinishFootball, s.defaults.AutoFinishFootball)
	opts.AutoFinish[competition.SportRugby] = s.durationValue(ctx, values, setting.KeyLiveSyncAutoFinishRugby, s.defaults.AutoFinishRugby)
	if raw, ok := values[setting.KeyLiveSyncMatchThreshold]; ok {
		if v, err := parseRatio(raw); err == nil {
			opts.MatchThreshold = v
		} else {
			s.logger.WarnContext(ctx, "ignore invalid stored setting", "key", setting.KeyLiveSyncMatchThreshold, "error", err)
		}
	}
	return opts, nil
}

func (s *SettingService) values(ctx context.Context) (map[string]string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[item.Key] = item.Value
	}
	return out, nil
}

func (s *SettingService) intValue(ctx context.Context, values map[string]string, key string, fallback int) int {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		s.logger.WarnContext(ctx, "ignore invalid stored setting", "key", key, "value", raw)
		return fallback
	}
	return v
}

func (s *SettingService) durationValue(ctx context.Context, values map[string]string, key string, fallback time.Duration) time.Duration {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		s.logger.WarnContext(ctx, "ignore invalid stored setting", "key", key, "value", raw)
		return fallback
	}
	return v
}

func (s *SettingService) view(def setting.Definition, item setting.Setting, stored bool) SettingView {
	out := SettingView{
		Key:         def.Key,
		Default:     s.defaultValue(def.Key),
		Type:        def.Type,
		Description: def.Description,
	}
	out.Value = out.Default
	if stored {
		out.Value = item.Value
		out.Overridden = true
		out.UpdatedBy = item.UpdatedBy
		if !item.UpdatedAt.IsZero() {
			updatedAt := item.UpdatedAt
			out.UpdatedAt = &updatedAt
		}
	}
	return out
}

func (s *SettingService) defaultValue(key string) string {
	switch key {
	case setting.KeyScoringExactPoints:
		return strconv.Itoa(s.defaults.Scoring.ExactScorePoints)
	case setting.KeyScoringOutcomePoints:
		return strconv.Itoa(s.defaults.Scoring.CorrectOutcomePoints)
	case setting.KeyScoringMissPoints:
		return strconv.Itoa(s.defaults.Scoring.MissPoints)
	case setting.KeyLiveSyncEnabled:
		return strconv.FormatBool(s.defaults.LiveSyncEnabled)
	case setting.KeyLiveSyncAutoFinishFootball:
		return s.defaults.AutoFinishFootball.String()
	case setting.KeyLiveSyncAutoFinishRugby:
		return s.defaults.AutoFinishRugby.String()
	case setting.KeyLiveSyncMatchThreshold:
		return strconv.FormatFloat(s.defaults.MatchThreshold, 'f', -1, 64)
	default:
		return ""
	}
}

func canonicalSettingValue(kind setting.ValueType, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case setting.TypeInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("expected integer")
		}
		if v < 0 {
			return "", fmt.Errorf("must be >= 0")
		}
		return strconv.Itoa(v), nil
	case setting.TypeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return "", fmt.Errorf("expected boolean")
		}
		return strconv.FormatBool(v), nil
	case setting.TypeDuration:
		v, err := time.ParseDuration(raw)
		if err != nil {
			return "", fmt.Errorf("expected duration like 150m")
		}
		if v <= 0 {
			return "", fmt.Errorf("must be > 0")
		}
		return v.String(), nil
	case setting.TypeRatio:
		v, err := parseRatio(raw)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported setting type %q", kind)
	}
}

func parseRatio(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("expected number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > 1 {
		return 0, fmt.Errorf("must be in (0, 1]")
	}
	return v, nil
}

func isScoringKey(key string) bool {
	return strings.HasPrefix(key, "scoring.")
}
