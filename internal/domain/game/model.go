package game

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// Game is one match inside a competition that users can bet on.
type Game struct {
	ID              string
	CompetitionID   string
	Matchday        int
	HomeTeamID      string
	AwayTeamID      string
	KickoffAt       time.Time
	Status          string
	HomeScore       *int
	AwayScore       *int
	Minute          string
	ProviderMatchID int64
	LastSyncedAt    *time.Time
	FinishedAt      *time.Time
}

// ListFilter narrows ListByCompetition. Zero values mean "any".
type ListFilter struct {
	CompetitionID string
	Status        string
	Matchday      int
}

// LiveUpdate carries the fields the score feed may change on a game.
type LiveUpdate struct {
	GameID          string
	Status          string
	HomeScore       *int
	AwayScore       *int
	Minute          string
	ProviderMatchID int64
	SyncedAt        time.Time
	FinishedAt      *time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsValidStatus(value string) bool {
	switch NormalizeStatus(value) {
	case StatusScheduled, StatusLive, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(g.CompetitionID) == "" {
		return fmt.Errorf("game competition id is required")
	}
	if g.HomeTeamID == "" || g.AwayTeamID == "" {
		return fmt.Errorf("game teams are required")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("game home and away team must differ")
	}
	if g.KickoffAt.IsZero() {
		return fmt.Errorf("game kickoff is required")
	}
	if g.Matchday < 0 {
		return fmt.Errorf("game matchday must be >= 0")
	}
	if !IsValidStatus(g.Status) {
		return fmt.Errorf("game status %q is not supported", g.Status)
	}
	if (g.HomeScore != nil && *g.HomeScore < 0) || (g.AwayScore != nil && *g.AwayScore < 0) {
		return fmt.Errorf("game score must be >= 0")
	}
	return nil
}

// HasStarted reports whether betting on the game is closed.
func (g Game) HasStarted(now time.Time) bool {
	if NormalizeStatus(g.Status) != StatusScheduled {
		return true
	}
	return !now.Before(g.KickoffAt)
}

func (g Game) IsFinal() bool {
	return NormalizeStatus(g.Status) == StatusFinished
}

func (g Game) IsLive() bool {
	return NormalizeStatus(g.Status) == StatusLive
}

// HasScore reports whether both sides have a recorded score.
func (g Game) HasScore() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

func IntPtr(v int) *int {
	return &v
}

// SameScore compares two optional scores.
func SameScore(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
