package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, item := range games {
		items[item.ID] = item
	}

	return &GameRepository{items: items}
}

func (r *GameRepository) ListByCompetition(_ context.Context, filter game.ListFilter) ([]game.Game, error) {
	status := ""
	if strings.TrimSpace(filter.Status) != "" {
		status = game.NormalizeStatus(filter.Status)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.items {
		if filter.CompetitionID != "" && item.CompetitionID != filter.CompetitionID {
			continue
		}
		if status != "" && game.NormalizeStatus(item.Status) != status {
			continue
		}
		if filter.Matchday > 0 && item.Matchday != filter.Matchday {
			continue
		}
		out = append(out, item)
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[gameID]
	if !ok {
		return game.Game{}, false, nil
	}

	return item, true, nil
}

func (r *GameRepository) Create(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("game %s already exists", item.ID)
	}
	r.items[item.ID] = item

	return nil
}

func (r *GameRepository) UpdateLive(_ context.Context, update game.LiveUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[update.GameID]
	if !ok {
		return fmt.Errorf("game %s not found", update.GameID)
	}

	item.Status = game.NormalizeStatus(update.Status)
	item.HomeScore = copyScore(update.HomeScore)
	item.AwayScore = copyScore(update.AwayScore)
	item.Minute = update.Minute
	if update.ProviderMatchID > 0 {
		item.ProviderMatchID = update.ProviderMatchID
	}
	if !update.SyncedAt.IsZero() {
		syncedAt := update.SyncedAt.UTC()
		item.LastSyncedAt = &syncedAt
	}
	if update.FinishedAt != nil {
		finishedAt := update.FinishedAt.UTC()
		item.FinishedAt = &finishedAt
	}
	r.items[item.ID] = item

	return nil
}

func (r *GameRepository) ListSyncCandidates(_ context.Context, competitionID string, from, to time.Time) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.items {
		if item.CompetitionID != competitionID || item.IsFinal() {
			continue
		}
		if item.KickoffAt.Before(from) || item.KickoffAt.After(to) {
			continue
		}
		out = append(out, item)
	}
	sortGames(out)

	return out, nil
}

func sortGames(items []game.Game) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})
}

func copyScore(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
