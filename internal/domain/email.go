package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SyncFailedEmailData holds data for the sync failure alert.
type SyncFailedEmailData struct {
	Email           string
	Operation       string
	ConferenceTitle string
	RequestID       string
	Error           string
}

// SyncNotifier tells an operator that a local edit did not reach the backend.
type SyncNotifier interface {
	NotifySyncFailed(ctx context.Context, data *SyncFailedEmailData) error
}
