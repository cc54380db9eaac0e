package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store, adapters and HTTP layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoActiveConference = errors.New("no active conference")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// BackendError is returned when the conference backend answers with a non-2xx status.
type BackendError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.StatusCode, e.Body)
}
