package rawdata

import "context"

type Repository interface {
	// Save stores a payload unless one with the same content hash already exists.
	Save(ctx context.Context, item Payload) (bool, error)
	Latest(ctx context.Context, provider, competitionID string) (Payload, bool, error)
}
