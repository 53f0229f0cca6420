package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/competition"
)

type CompetitionRepository struct {
	mu           sync.RWMutex
	items        map[string]competition.Competition
	orders       []string
	participants map[string][]competition.Participant
}

func NewCompetitionRepository(competitions []competition.Competition, participants []competition.Participant) *CompetitionRepository {
	repo := &CompetitionRepository{
		items:        make(map[string]competition.Competition, len(competitions)),
		orders:       make([]string, 0, len(competitions)),
		participants: make(map[string][]competition.Participant),
	}

	for _, c := range competitions {
		if _, exists := repo.items[c.ID]; !exists {
			repo.orders = append(repo.orders, c.ID)
		}
		repo.items[c.ID] = c
	}
	for _, p := range participants {
		repo.participants[p.CompetitionID] = append(repo.participants[p.CompetitionID], p)
	}

	return repo
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *CompetitionRepository) ListActive(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.orders))
	for _, id := range r.orders {
		if item := r.items[id]; item.IsActive {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[competitionID]
	if !ok {
		return competition.Competition{}, false, nil
	}

	return c, true, nil
}

func (r *CompetitionRepository) Upsert(_ context.Context, item competition.Competition) error {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return fmt.Errorf("competition id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		r.orders = append(r.orders, id)
	}
	r.items[id] = item

	return nil
}

// AddParticipant is idempotent: joining twice keeps the first join time.
func (r *CompetitionRepository) AddParticipant(_ context.Context, item competition.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.CompetitionID]; !ok {
		return fmt.Errorf("competition %s not found", item.CompetitionID)
	}
	rows := r.participants[item.CompetitionID]
	for idx := range rows {
		if rows[idx].UserID == item.UserID {
			if item.DisplayName != "" {
				rows[idx].DisplayName = item.DisplayName
			}
			return nil
		}
	}
	r.participants[item.CompetitionID] = append(rows, item)

	return nil
}

func (r *CompetitionRepository) ListParticipants(_ context.Context, competitionID string) ([]competition.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.participants[competitionID]
	out := make([]competition.Participant, 0, len(rows))
	out = append(out, rows...)

	return out, nil
}

func (r *CompetitionRepository) IsParticipant(_ context.Context, competitionID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.participants[competitionID] {
		if p.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}
