package controllers

import (
	"log/slog"
	"net/http"

	"confadmin/internal/delivery/http/helpers"
	"confadmin/internal/domain"
)

// JournalSuccessResponse is the success envelope for GET /journal.
type JournalSuccessResponse struct {
	Data  []*domain.SyncEntry `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type JournalController struct {
	Logger  *slog.Logger
	Journal domain.SyncJournal
}

func NewJournalController(logger *slog.Logger, journal domain.SyncJournal) *JournalController {
	return &JournalController{
		Logger:  logger,
		Journal: journal,
	}
}

// ListJournal godoc
// @Summary List backend sync attempts
// @Description Returns recent pushes to the conference backend, newest first. failed=true keeps only pushes the backend did not accept.
// @Tags journal
// @Produce json
// @Security BearerAuth
// @Param failed query bool false "Only failed pushes"
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} controllers.JournalSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /journal [get]
func (c *JournalController) ListJournal(w http.ResponseWriter, r *http.Request) {
	limit := helpers.ParseLimit(r)
	var (
		entries []*domain.SyncEntry
		err     error
	)
	if helpers.ParseBool(r, "failed") {
		entries, err = c.Journal.ListFailed(r.Context(), limit)
	} else {
		entries, err = c.Journal.ListRecent(r.Context(), limit)
	}
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if entries == nil {
		entries = []*domain.SyncEntry{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}
