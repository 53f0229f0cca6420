package team

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
)

// Team is a club or national side known to the game.
type Team struct {
	ID             string
	Name           string
	ShortName      string
	Sport          string
	Country        string
	ProviderTeamID int64
	Aliases        []string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if !competition.IsValidSport(t.Sport) {
		return fmt.Errorf("team sport %q is not supported", t.Sport)
	}
	if t.ProviderTeamID < 0 {
		return fmt.Errorf("team provider id must be >= 0")
	}
	return nil
}

// CleanAliases trims, drops empties and removes case-insensitive duplicates.
func CleanAliases(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		item := strings.TrimSpace(v)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
