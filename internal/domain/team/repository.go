package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, sport string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByProviderID(ctx context.Context, sport string, providerTeamID int64) (Team, bool, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	Delete(ctx context.Context, teamID string) error
}
