package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/bet"
)

type BetRepository struct {
	mu     sync.RWMutex
	items  map[string]bet.Bet
	orders []string
	// user id + game id -> bet id
	byUserGame map[string]string
}

func NewBetRepository(bets []bet.Bet) *BetRepository {
	repo := &BetRepository{
		items:      make(map[string]bet.Bet, len(bets)),
		orders:     make([]string, 0, len(bets)),
		byUserGame: make(map[string]string, len(bets)),
	}
	for _, item := range bets {
		_, _ = repo.upsertLocked(item)
	}

	return repo
}

func (r *BetRepository) Upsert(_ context.Context, item bet.Bet) (bet.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.upsertLocked(item)
}

func (r *BetRepository) upsertLocked(item bet.Bet) (bet.Bet, error) {
	key := userGameKey(item.UserID, item.GameID)
	if existingID, ok := r.byUserGame[key]; ok {
		existing := r.items[existingID]
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		item.Points = nil
		item.ResultKind = ""
		r.items[existingID] = item
		return item, nil
	}

	if item.ID == "" {
		return bet.Bet{}, fmt.Errorf("bet id is required")
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	r.byUserGame[key] = item.ID

	return item, nil
}

func (r *BetRepository) ListByGame(_ context.Context, gameID string) ([]bet.Bet, error) {
	return r.filter(func(b bet.Bet) bool { return b.GameID == gameID }), nil
}

func (r *BetRepository) ListByUserCompetition(_ context.Context, userID, competitionID string) ([]bet.Bet, error) {
	return r.filter(func(b bet.Bet) bool {
		return b.UserID == userID && b.CompetitionID == competitionID
	}), nil
}

func (r *BetRepository) ListByCompetition(_ context.Context, competitionID string) ([]bet.Bet, error) {
	return r.filter(func(b bet.Bet) bool { return b.CompetitionID == competitionID }), nil
}

// UpdatePoints applies the whole batch or nothing.
func (r *BetRepository) UpdatePoints(_ context.Context, updates []bet.PointsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		if _, ok := r.items[u.BetID]; !ok {
			return fmt.Errorf("bet %s not found", u.BetID)
		}
	}
	for _, u := range updates {
		item := r.items[u.BetID]
		points := u.Points
		item.Points = &points
		item.ResultKind = u.ResultKind
		if !u.ScoredAt.IsZero() {
			item.UpdatedAt = u.ScoredAt
		}
		r.items[u.BetID] = item
	}

	return nil
}

func (r *BetRepository) filter(keep func(bet.Bet) bool) []bet.Bet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bet.Bet, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}

func userGameKey(userID, gameID string) string {
	return userID + "|" + gameID
}
