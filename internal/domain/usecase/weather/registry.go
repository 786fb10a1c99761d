package weather

import (
	"sync"
	"time"

	"surfcast-api/internal/domain/model"
)

type refreshEntry struct {
	state     model.RefreshState
	err       string
	updatedAt time.Time
}

// refreshRegistry tracks the refresh state machine of each location in this process
type refreshRegistry struct {
	mu      sync.Mutex
	entries map[string]refreshEntry
}

func newRefreshRegistry() *refreshRegistry {
	return &refreshRegistry{entries: make(map[string]refreshEntry)}
}

// begin moves id to LOADING and returns the entry it replaced. ok is false while a refresh is running.
func (r *refreshRegistry) begin(id string, now time.Time) (previous refreshEntry, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, exists := r.entries[id]
	if exists && previous.state == model.RefreshLoading {
		return previous, false
	}
	if !exists {
		previous = refreshEntry{state: model.RefreshIdle}
	}
	r.entries[id] = refreshEntry{state: model.RefreshLoading, updatedAt: now}
	return previous, true
}

func (r *refreshRegistry) finish(id string, entry refreshEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.state == model.RefreshIdle {
		delete(r.entries, id)
		return
	}
	r.entries[id] = entry
}

func (r *refreshRegistry) status(id string) model.RefreshStatus {
	r.mu.Lock()
	entry, exists := r.entries[id]
	r.mu.Unlock()

	if !exists {
		return model.RefreshStatus{LocationID: id, State: model.RefreshIdle}
	}
	status := model.RefreshStatus{LocationID: id, State: entry.state, Error: entry.err}
	if !entry.updatedAt.IsZero() {
		updatedAt := entry.updatedAt
		status.UpdatedAt = &updatedAt
	}
	return status
}
