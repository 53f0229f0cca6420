package scoring

import (
	"errors"
	"fmt"
)

var ErrInvalidRules = errors.New("invalid scoring rules")

type Kind string

const (
	KindExact   Kind = "exact"
	KindOutcome Kind = "outcome"
	KindMiss    Kind = "miss"
)

type MatchOutcome string

const (
	OutcomeHomeWin MatchOutcome = "home"
	OutcomeDraw    MatchOutcome = "draw"
	OutcomeAwayWin MatchOutcome = "away"
)

// Rules stores how many points each prediction result is worth.
type Rules struct {
	ExactScorePoints     int
	CorrectOutcomePoints int
	MissPoints           int
}

type Result struct {
	Points int
	Kind   Kind
}

func DefaultRules() Rules {
	return Rules{
		ExactScorePoints:     3,
		CorrectOutcomePoints: 1,
		MissPoints:           0,
	}
}

func (r Rules) Validate() error {
	if r.ExactScorePoints < 0 || r.CorrectOutcomePoints < 0 || r.MissPoints < 0 {
		return fmt.Errorf("%w: points must be >= 0", ErrInvalidRules)
	}
	if r.ExactScorePoints < r.CorrectOutcomePoints {
		return fmt.Errorf("%w: exact=%d is below outcome=%d", ErrInvalidRules, r.ExactScorePoints, r.CorrectOutcomePoints)
	}
	if r.CorrectOutcomePoints < r.MissPoints {
		return fmt.Errorf("%w: outcome=%d is below miss=%d", ErrInvalidRules, r.CorrectOutcomePoints, r.MissPoints)
	}
	return nil
}

func Outcome(home, away int) MatchOutcome {
	switch {
	case home > away:
		return OutcomeHomeWin
	case home < away:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Score grades a prediction against the final score.
func Score(rules Rules, betHome, betAway, finalHome, finalAway int) Result {
	if betHome == finalHome && betAway == finalAway {
		return Result{Points: rules.ExactScorePoints, Kind: KindExact}
	}
	if Outcome(betHome, betAway) == Outcome(finalHome, finalAway) {
		return Result{Points: rules.CorrectOutcomePoints, Kind: KindOutcome}
	}
	return Result{Points: rules.MissPoints, Kind: KindMiss}
}
