package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/jobscheduler"
)

// JobDispatchRepository keeps the latest event per dispatch id.
type JobDispatchRepository struct {
	mu    sync.RWMutex
	items map[string]jobscheduler.DispatchEvent
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{items: make(map[string]jobscheduler.DispatchEvent)}
}

func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	dispatchID := strings.TrimSpace(event.DispatchID)
	if dispatchID == "" {
		return fmt.Errorf("dispatch id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[dispatchID]; ok {
		if len(event.Payload) == 0 {
			event.Payload = existing.Payload
		}
		if event.CompetitionID == "" {
			event.CompetitionID = existing.CompetitionID
		}
	}
	if event.Status != jobscheduler.StatusFailed {
		event.ErrorMessage = ""
	}
	event.DispatchID = dispatchID
	r.items[dispatchID] = event

	return nil
}

func (r *JobDispatchRepository) ListRecent(_ context.Context, jobName string, limit int) ([]jobscheduler.DispatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobscheduler.DispatchEvent, 0, len(r.items))
	for _, item := range r.items {
		if jobName != "" && item.JobName != jobName {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].DispatchID < out[j].DispatchID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
