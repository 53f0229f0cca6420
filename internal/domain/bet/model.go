package bet

import (
	"fmt"
	"strings"
	"time"
)

const MaxPredictedScore = 99

// Bet is a user's predicted final score for one game.
type Bet struct {
	ID            string
	UserID        string
	GameID        string
	CompetitionID string
	HomeScore     int
	AwayScore     int
	Points        *int
	ResultKind    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PointsUpdate is the outcome of grading one bet.
type PointsUpdate struct {
	BetID      string
	Points     int
	ResultKind string
	ScoredAt   time.Time
}

func (b Bet) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return fmt.Errorf("bet user id is required")
	}
	if strings.TrimSpace(b.GameID) == "" {
		return fmt.Errorf("bet game id is required")
	}
	if b.HomeScore < 0 || b.AwayScore < 0 {
		return fmt.Errorf("predicted score must be >= 0")
	}
	if b.HomeScore > MaxPredictedScore || b.AwayScore > MaxPredictedScore {
		return fmt.Errorf("predicted score must be <= %d", MaxPredictedScore)
	}
	return nil
}

func (b Bet) IsScored() bool {
	return b.Points != nil
}
