package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"confadmin/config"
	"confadmin/internal/adapters/auth"
	"confadmin/internal/adapters/backend"
	"confadmin/internal/adapters/email"
	"confadmin/internal/domain"
	"confadmin/internal/repository/memory"
	"confadmin/internal/repository/postgres"
	"confadmin/internal/services"
)

// newBackend builds the conference backend client. Requests carry a service JWT when
// BACKEND_TOKEN_SECRET is set.
func newBackend(cfg *config.Config, logger *slog.Logger) (domain.ConferenceBackend, error) {
	if cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL is required")
	}
	var tokens domain.TokenIssuer
	if cfg.BackendTokenSecret != "" {
		tokens = auth.NewJWTIssuer(cfg.BackendTokenSecret)
	}
	client := &http.Client{Timeout: cfg.BackendTimeout}
	return backend.NewHTTPClient(cfg.BackendURL, client, tokens, logger), nil
}

// newJournal opens the Postgres journal when JOURNAL_DATABASE_URL is set and falls back to
// an in-memory ring otherwise. The returned close func is never nil.
func newJournal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.SyncJournal, func(), error) {
	if cfg.JournalDBUrl == "" {
		logger.Info("sync journal kept in memory", "capacity", memory.DefaultJournalCapacity)
		return memory.NewSyncJournal(memory.DefaultJournalCapacity), func() {}, nil
	}
	db, err := postgres.Open(ctx, cfg.JournalDBUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sync journal: %w", err)
	}
	logger.Info("sync journal stored in postgres")
	return postgres.NewSyncJournalRepository(db), closeDB(db, logger), nil
}

func closeDB(db *sql.DB, logger *slog.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close journal database", "err", err)
		}
	}
}

// newNotifier wires the mailer and templates behind the sync failure alerts.
func newNotifier(cfg *config.Config, logger *slog.Logger) (domain.SyncNotifier, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return services.NewSyncNotifier(mailer, renderer, cfg.AlertEmail, logger), nil
}
