package memory

import (
	"context"
	"sync"

	"confadmin/internal/domain"
)

// DefaultJournalCapacity bounds how many entries SyncJournal keeps.
const DefaultJournalCapacity = 1000

// SyncJournal is an in-memory domain.SyncJournal used when no database is configured.
// Once full, the oldest entries are dropped.
type SyncJournal struct {
	mu       sync.RWMutex
	entries  []*domain.SyncEntry
	capacity int
	nextID   int64
}

func NewSyncJournal(capacity int) *SyncJournal {
	if capacity <= 0 {
		capacity = DefaultJournalCapacity
	}
	return &SyncJournal{capacity: capacity, nextID: 1}
}

func (j *SyncJournal) Record(_ context.Context, e *domain.SyncEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	e.ID = j.nextID
	j.nextID++
	cp := *e
	j.entries = append(j.entries, &cp)
	if over := len(j.entries) - j.capacity; over > 0 {
		j.entries = j.entries[over:]
	}
	return nil
}

func (j *SyncJournal) ListRecent(_ context.Context, limit int) ([]*domain.SyncEntry, error) {
	return j.collect(limit, func(*domain.SyncEntry) bool { return true }), nil
}

func (j *SyncJournal) ListFailed(_ context.Context, limit int) ([]*domain.SyncEntry, error) {
	return j.collect(limit, func(e *domain.SyncEntry) bool { return e.Status == domain.SyncStatusFailed }), nil
}

// collect walks newest to oldest and returns copies of up to limit matching entries.
func (j *SyncJournal) collect(limit int, keep func(*domain.SyncEntry) bool) []*domain.SyncEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := []*domain.SyncEntry{}
	for i := len(j.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(j.entries[i]) {
			cp := *j.entries[i]
			out = append(out, &cp)
		}
	}
	return out
}
