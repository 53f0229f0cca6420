package bet

import "context"

type Repository interface {
	// Upsert stores one bet per user and game. An existing prediction is overwritten
	// and keeps its id and creation time.
	Upsert(ctx context.Context, item Bet) (Bet, error)
	ListByGame(ctx context.Context, gameID string) ([]Bet, error)
	ListByUserCompetition(ctx context.Context, userID, competitionID string) ([]Bet, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Bet, error)
	UpdatePoints(ctx context.Context, updates []PointsUpdate) error
}
