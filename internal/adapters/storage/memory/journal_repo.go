package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"bodycomp-notion/internal/domain/journal"
)

type journalRepo struct {
	mu    sync.RWMutex
	byID  map[string]journal.Entry
	limit int
}

// NewJournalRepo guarda a lo sumo maxEntries (las más viejas se descartan).
// maxEntries <= 0 => 1000.
func NewJournalRepo(maxEntries int) journal.Repository {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &journalRepo{
		byID:  make(map[string]journal.Entry),
		limit: maxEntries,
	}
}

func (r *journalRepo) Create(ctx context.Context, e journal.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("journal entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("journal entry already exists")
	}
	r.byID[e.ID] = e

	if len(r.byID) > r.limit {
		r.evictOldestLocked()
	}
	return nil
}

func (r *journalRepo) ListRecent(ctx context.Context, limit int) ([]journal.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]journal.Entry, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *journalRepo) evictOldestLocked() {
	var oldestID string
	for id, e := range r.byID {
		if oldestID == "" || e.ReceivedAt.Before(r.byID[oldestID].ReceivedAt) {
			oldestID = id
		}
	}
	delete(r.byID, oldestID)
}
