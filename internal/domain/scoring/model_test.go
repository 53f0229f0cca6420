package scoring

import (
	"errors"
	"testing"
)

func TestScore(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	tests := []struct {
		name                 string
		betHome, betAway     int
		finalHome, finalAway int
		wantPoints           int
		wantKind             Kind
	}{
		{name: "exact home win", betHome: 2, betAway: 1, finalHome: 2, finalAway: 1, wantPoints: 3, wantKind: KindExact},
		{name: "exact goalless draw", betHome: 0, betAway: 0, finalHome: 0, finalAway: 0, wantPoints: 3, wantKind: KindExact},
		{name: "right winner wrong score", betHome: 3, betAway: 0, finalHome: 1, finalAway: 0, wantPoints: 1, wantKind: KindOutcome},
		{name: "draw predicted different draw", betHome: 1, betAway: 1, finalHome: 2, finalAway: 2, wantPoints: 1, wantKind: KindOutcome},
		{name: "away win predicted", betHome: 0, betAway: 2, finalHome: 1, finalAway: 4, wantPoints: 1, wantKind: KindOutcome},
		{name: "wrong outcome", betHome: 2, betAway: 0, finalHome: 0, finalAway: 1, wantPoints: 0, wantKind: KindMiss},
		{name: "draw predicted home win", betHome: 1, betAway: 1, finalHome: 2, finalAway: 1, wantPoints: 0, wantKind: KindMiss},
		{name: "rugby scale exact", betHome: 27, betAway: 24, finalHome: 27, finalAway: 24, wantPoints: 3, wantKind: KindExact},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Score(rules, tc.betHome, tc.betAway, tc.finalHome, tc.finalAway)
			if got.Points != tc.wantPoints || got.Kind != tc.wantKind {
				t.Fatalf("unexpected result: got=%+v want points=%d kind=%s", got, tc.wantPoints, tc.wantKind)
			}
		})
	}
}

func TestScore_CustomRules(t *testing.T) {
	t.Parallel()

	rules := Rules{ExactScorePoints: 5, CorrectOutcomePoints: 2, MissPoints: 0}
	if got := Score(rules, 1, 0, 1, 0); got.Points != 5 {
		t.Fatalf("unexpected exact points: got=%d want=5", got.Points)
	}
	if got := Score(rules, 2, 0, 1, 0); got.Points != 2 {
		t.Fatalf("unexpected outcome points: got=%d want=2", got.Points)
	}
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules should be valid: %v", err)
	}
	bad := []Rules{
		{ExactScorePoints: -1},
		{ExactScorePoints: 1, CorrectOutcomePoints: 3},
		{ExactScorePoints: 3, CorrectOutcomePoints: 1, MissPoints: 2},
	}
	for i, r := range bad {
		if err := r.Validate(); !errors.Is(err, ErrInvalidRules) {
			t.Fatalf("case %d: expected ErrInvalidRules, got %v", i, err)
		}
	}
}
