package competition

import "context"

type Repository interface {
	List(ctx context.Context) ([]Competition, error)
	ListActive(ctx context.Context) ([]Competition, error)
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	Upsert(ctx context.Context, item Competition) error
	AddParticipant(ctx context.Context, item Participant) error
	ListParticipants(ctx context.Context, competitionID string) ([]Participant, error)
	IsParticipant(ctx context.Context, competitionID, userID string) (bool, error)
}
