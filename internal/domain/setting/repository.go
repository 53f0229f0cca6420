package setting

import "context"

type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (Setting, bool, error)
	Upsert(ctx context.Context, item Setting) error
}
