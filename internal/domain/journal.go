package domain

import (
	"context"
	"time"
)

// Sync outcomes recorded in the journal.
const (
	SyncStatusOK     = "ok"
	SyncStatusFailed = "failed"
)

// SyncEntry records one push to the conference backend. Local edits are applied before
// the push and never rolled back, so failed entries mark state the backend may not hold.
// swagger:model SyncEntry
type SyncEntry struct {
	ID              int64     `json:"id"`
	RequestID       string    `json:"request_id"`
	Operation       string    `json:"operation"`
	ConferenceTitle string    `json:"conference_title"`
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSyncEntry returns an entry for the given operation. ID is set by the journal on Record.
func NewSyncEntry(requestID, operation, conferenceTitle string, err error, createdAt time.Time) *SyncEntry {
	e := &SyncEntry{
		RequestID:       requestID,
		Operation:       operation,
		ConferenceTitle: conferenceTitle,
		Status:          SyncStatusOK,
		CreatedAt:       createdAt,
	}
	if err != nil {
		e.Status = SyncStatusFailed
		e.Error = err.Error()
	}
	return e
}

// SyncJournal stores SyncEntry records, newest first on read.
type SyncJournal interface {
	Record(ctx context.Context, entry *SyncEntry) error
	ListRecent(ctx context.Context, limit int) ([]*SyncEntry, error)
	ListFailed(ctx context.Context, limit int) ([]*SyncEntry, error)
}
