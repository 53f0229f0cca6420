package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/setting"
)

type SettingRepository struct {
	mu    sync.RWMutex
	items map[string]setting.Setting
}

func NewSettingRepository() *SettingRepository {
	return &SettingRepository{items: make(map[string]setting.Setting)}
}

func (r *SettingRepository) List(_ context.Context) ([]setting.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]setting.Setting, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out, nil
}

func (r *SettingRepository) Get(_ context.Context, key string) (setting.Setting, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	return item, ok, nil
}

func (r *SettingRepository) Upsert(_ context.Context, item setting.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Key] = item
	return nil
}
