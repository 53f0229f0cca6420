package game

import (
	"context"
	"time"
)

type Repository interface {
	ListByCompetition(ctx context.Context, filter ListFilter) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	Create(ctx context.Context, item Game) error
	UpdateLive(ctx context.Context, update LiveUpdate) error
	// ListSyncCandidates returns non-final games of a competition with kickoff inside [from, to].
	ListSyncCandidates(ctx context.Context, competitionID string, from, to time.Time) ([]Game, error)
}
