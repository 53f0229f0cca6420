package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
	"github.com/riskibarqy/prediction-league/internal/domain/team"
)

// TeamRepository keeps deleted teams around so game rows pointing at them stay readable.
type TeamRepository struct {
	mu      sync.RWMutex
	items   map[string]team.Team
	deleted map[string]bool
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		items[item.ID] = cloneTeam(item)
	}

	return &TeamRepository{
		items:   items,
		deleted: make(map[string]bool),
	}
}

func (r *TeamRepository) List(_ context.Context, sport string) ([]team.Team, error) {
	sport = competition.NormalizeSport(sport)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for id, item := range r.items {
		if r.deleted[id] {
			continue
		}
		if sport != "" && competition.NormalizeSport(item.Sport) != sport {
			continue
		}
		out = append(out, cloneTeam(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok || r.deleted[teamID] {
		return team.Team{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *TeamRepository) GetByProviderID(_ context.Context, sport string, providerTeamID int64) (team.Team, bool, error) {
	if providerTeamID <= 0 {
		return team.Team{}, false, nil
	}
	sport = competition.NormalizeSport(sport)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, item := range r.items {
		if r.deleted[id] || item.ProviderTeamID != providerTeamID {
			continue
		}
		if competition.NormalizeSport(item.Sport) == sport {
			return cloneTeam(item), true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return fmt.Errorf("team id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; exists && !r.deleted[id] {
		return fmt.Errorf("team %s already exists", id)
	}
	r.items[id] = cloneTeam(item)
	delete(r.deleted, id)

	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists || r.deleted[item.ID] {
		return fmt.Errorf("team %s not found", item.ID)
	}
	r.items[item.ID] = cloneTeam(item)

	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[teamID]; !exists {
		return fmt.Errorf("team %s not found", teamID)
	}
	r.deleted[teamID] = true

	return nil
}

func cloneTeam(item team.Team) team.Team {
	item.Aliases = append([]string(nil), item.Aliases...)
	return item
}
