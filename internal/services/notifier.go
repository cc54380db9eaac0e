package services

import (
	"context"
	"fmt"
	"log/slog"

	"confadmin/internal/domain"
)

type syncNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
	logger   *slog.Logger
}

// NewSyncNotifier returns a SyncNotifier that emails the "sync_failed" template to the given
// address. With an empty address alerts are only logged.
func NewSyncNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string, logger *slog.Logger) domain.SyncNotifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &syncNotifier{mailer: mailer, renderer: renderer, to: to, logger: logger}
}

func (s *syncNotifier) NotifySyncFailed(ctx context.Context, data *domain.SyncFailedEmailData) error {
	if data == nil {
		return fmt.Errorf("sync failure data is nil")
	}
	if s.to == "" {
		s.logger.WarnContext(ctx, "sync failed, no alert address configured",
			"operation", data.Operation, "conference", data.ConferenceTitle, "err", data.Error)
		return nil
	}
	data.Email = s.to
	subject, htmlBody, textBody, err := s.renderer.Render("sync_failed", data)
	if err != nil {
		return fmt.Errorf("failed to render sync_failed template: %w", err)
	}
	if err := s.mailer.Send(s.to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send sync failure email: %w", err)
	}
	s.logger.InfoContext(ctx, "sync failure alert sent", "to", s.to, "operation", data.Operation)
	return nil
}
