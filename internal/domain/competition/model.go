package competition

import (
	"fmt"
	"strings"
	"time"
)

const (
	SportFootball = "football"
	SportRugby    = "rugby"
)

// Competition is one tournament instance, e.g. a league season.
type Competition struct {
	ID           string
	Name         string
	Sport        string
	Season       string
	ProviderCode string
	StartsAt     time.Time
	EndsAt       time.Time
	IsActive     bool
}

// Participant is a user who joined a competition.
type Participant struct {
	CompetitionID string
	UserID        string
	DisplayName   string
	JoinedAt      time.Time
}

func NormalizeSport(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func IsValidSport(value string) bool {
	switch NormalizeSport(value) {
	case SportFootball, SportRugby:
		return true
	default:
		return false
	}
}

func (c Competition) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("competition id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("competition name is required")
	}
	if !IsValidSport(c.Sport) {
		return fmt.Errorf("competition sport %q is not supported", c.Sport)
	}
	if !c.StartsAt.IsZero() && !c.EndsAt.IsZero() && c.EndsAt.Before(c.StartsAt) {
		return fmt.Errorf("competition end must not be before start")
	}
	return nil
}

// Syncable reports whether the competition is tracked by the external score feed.
func (c Competition) Syncable() bool {
	return c.IsActive && strings.TrimSpace(c.ProviderCode) != ""
}
