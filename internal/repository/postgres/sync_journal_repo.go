package postgres

import (
	"context"
	"database/sql"

	"confadmin/internal/domain"

	_ "github.com/lib/pq"
)

// Schema is the DDL for the journal table. Open runs it on startup.
const Schema = `
	CREATE TABLE IF NOT EXISTS sync_journal (
		id               BIGSERIAL PRIMARY KEY,
		request_id       TEXT NOT NULL,
		operation        TEXT NOT NULL,
		conference_title TEXT NOT NULL,
		status           TEXT NOT NULL,
		error            TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sync_journal_status_created_at_idx ON sync_journal (status, created_at DESC);
`

// Open connects to Postgres and makes sure the journal table exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type SyncJournalRepository struct {
	DB *sql.DB
}

func NewSyncJournalRepository(db *sql.DB) domain.SyncJournal {
	return &SyncJournalRepository{
		DB: db,
	}
}

func (r *SyncJournalRepository) Record(ctx context.Context, e *domain.SyncEntry) error {
	query := `
		INSERT INTO sync_journal (request_id, operation, conference_title, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.RequestID, e.Operation, e.ConferenceTitle, e.Status, e.Error, e.CreatedAt).Scan(&e.ID)
}

func (r *SyncJournalRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SyncEntry, error) {
	query := `
		SELECT id, request_id, operation, conference_title, status, error, created_at
		FROM sync_journal
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *SyncJournalRepository) ListFailed(ctx context.Context, limit int) ([]*domain.SyncEntry, error) {
	query := `
		SELECT id, request_id, operation, conference_title, status, error, created_at
		FROM sync_journal
		WHERE status = 'failed'
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *SyncJournalRepository) list(ctx context.Context, query string, limit int) ([]*domain.SyncEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := []*domain.SyncEntry{}
	for rows.Next() {
		e := &domain.SyncEntry{}
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Operation, &e.ConferenceTitle, &e.Status, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
