package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/rawdata"
)

// RawDataRepository keeps at most limit payloads, dropping the oldest first.
type RawDataRepository struct {
	mu     sync.Mutex
	limit  int
	items  []rawdata.Payload
	hashes map[string]struct{}
}

const defaultRawDataLimit = 200

func NewRawDataRepository(limit int) *RawDataRepository {
	if limit <= 0 {
		limit = defaultRawDataLimit
	}
	return &RawDataRepository{
		limit:  limit,
		hashes: make(map[string]struct{}),
	}
}

func (r *RawDataRepository) Save(_ context.Context, item rawdata.Payload) (bool, error) {
	if item.ContentHash == "" {
		item.ContentHash = rawdata.HashBody(item.Body)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hashes[item.ContentHash]; exists {
		return false, nil
	}
	item.Body = append([]byte(nil), item.Body...)
	r.items = append(r.items, item)
	r.hashes[item.ContentHash] = struct{}{}

	for len(r.items) > r.limit {
		delete(r.hashes, r.items[0].ContentHash)
		r.items = r.items[1:]
	}

	return true, nil
}

func (r *RawDataRepository) Latest(_ context.Context, provider, competitionID string) (rawdata.Payload, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.items) - 1; i >= 0; i-- {
		item := r.items[i]
		if item.Provider == provider && item.CompetitionID == competitionID {
			item.Body = append([]byte(nil), item.Body...)
			return item, true, nil
		}
	}

	return rawdata.Payload{}, false, nil
}
