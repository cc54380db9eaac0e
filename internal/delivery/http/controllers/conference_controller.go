package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"confadmin/internal/delivery/http/helpers"
	"confadmin/internal/domain"
)

// ConferenceRequest is the request body for POST /conferences and PUT /conferences/{title}.
type ConferenceRequest struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Validate implements Validator.
func (c ConferenceRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.Start == "" {
		errs = append(errs, "start is required")
	}
	if c.End == "" {
		errs = append(errs, "end is required")
	}
	return errs
}

// AddTimeslotRequest is the request body for POST /conferences/{title}/timeslots.
type AddTimeslotRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Validate implements Validator.
func (a AddTimeslotRequest) Validate() []string {
	var errs []string
	if a.Date == "" {
		errs = append(errs, "date is required")
	}
	if a.Start == "" {
		errs = append(errs, "start is required")
	}
	if a.End == "" {
		errs = append(errs, "end is required")
	}
	return errs
}

// AddRoomRequest is the request body for POST /conferences/{title}/rooms.
type AddRoomRequest struct {
	Room string `json:"room"`
}

// Validate implements Validator.
func (a AddRoomRequest) Validate() []string {
	if strings.TrimSpace(a.Room) == "" {
		return []string{"room is required"}
	}
	return nil
}

// MoveRoomRequest is the request body for POST /conferences/{title}/rooms/{room}/move.
type MoveRoomRequest struct {
	Direction domain.Direction `json:"direction"`
}

// Validate implements Validator.
func (m MoveRoomRequest) Validate() []string {
	if m.Direction != domain.DirectionLater && m.Direction != domain.DirectionEarlier {
		return []string{`direction must be "+" or "-"`}
	}
	return nil
}

// MoveRoomResponse reports whether the room moved. Conference is the backend's copy when it did.
type MoveRoomResponse struct {
	Moved      bool               `json:"moved"`
	Conference *domain.Conference `json:"conference,omitempty"`
}

// SlotResponse is the response body for GET /slots/{slotID}.
type SlotResponse struct {
	Slot domain.TimeSlot `json:"slot"`
	Date string          `json:"date"`
}

// ConferenceSuccessResponse is the success envelope for endpoints returning one conference.
type ConferenceSuccessResponse struct {
	Data  *domain.Conference `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ConferenceListSuccessResponse is the success envelope for endpoints returning all conferences.
type ConferenceListSuccessResponse struct {
	Data  []*domain.Conference `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// ListConferences godoc
// @Summary List conferences
// @Description Returns the locally held conferences, including edits the backend may not have accepted.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences [get]
func (c *ConferenceController) ListConferences(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.Conferences())
}

// SyncConferences godoc
// @Summary Reload conferences from the backend
// @Description Replaces the local list with the backend's and re-derives the active and default conferences.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences/sync [post]
func (c *ConferenceController) SyncConferences(w http.ResponseWriter, r *http.Request) {
	confs, err := c.Service.GetAllConferences(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference and makes it both the active and the default one.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ConferenceRequest true "Title and date range"
// @Success 201 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.CreateConference(r.Context(), req.Title, req.Start, req.End)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, c.orLocal(conf, strings.TrimSpace(req.Title)))
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Renames a conference and replaces its date range.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title path string true "Current conference title"
// @Param body body ConferenceRequest true "New title and date range"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences/{title} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	var req ConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.UpdateConference(r.Context(), title, req.Title, req.Start, req.End)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.orLocal(conf, strings.TrimSpace(req.Title)))
}

// SetActive godoc
// @Summary Make a conference active
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param title path string true "Conference title"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences/{title}/active [post]
func (c *ConferenceController) SetActive(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	conf, err := c.Service.ChangeActiveConf(r.Context(), title)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.orLocal(conf, title))
}

// SetDefault godoc
// @Summary Make a conference the default
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param title path string true "Conference title"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences/{title}/default [post]
func (c *ConferenceController) SetDefault(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	conf, err := c.Service.ChangeDefaultConf(r.Context(), title)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.orLocal(conf, title))
}

// AddTimeslot godoc
// @Summary Add a time slot
// @Description Adds a slot to the given date, creating the day when it does not exist yet. Returns the backend's copy, which carries the new slot ID.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title path string true "Conference title"
// @Param body body AddTimeslotRequest true "Date and slot times"
// @Success 201 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences/{title}/timeslots [post]
func (c *ConferenceController) AddTimeslot(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	var req AddTimeslotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.AddTimeslot(r.Context(), req.Start, req.End, title, req.Date)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, conf)
}

// AddRoom godoc
// @Summary Add a room
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title path string true "Conference title"
// @Param body body AddRoomRequest true "Room name"
// @Success 201 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences/{title}/rooms [post]
func (c *ConferenceController) AddRoom(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	var req AddRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.AddRoom(r.Context(), title, req.Room)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, c.orLocal(conf, title))
}

// MoveRoom godoc
// @Summary Move a room
// @Description Swaps the room with its neighbour. "+" moves it later, "-" earlier. Moving past either end is a no-op reported as moved=false.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title path string true "Conference title"
// @Param room path string true "Room name"
// @Param body body MoveRoomRequest true "Direction"
// @Success 200 {object} helpers.APIResponse "data contains moved and conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /conferences/{title}/rooms/{room}/move [post]
func (c *ConferenceController) MoveRoom(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	room := r.PathValue("room")
	var req MoveRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Service.MoveRoom(r.Context(), title, room, req.Direction)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MoveRoomResponse{Moved: conf != nil, Conference: conf})
}

// GetActive godoc
// @Summary Get the active conference
// @Tags selection
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /selection/active [get]
func (c *ConferenceController) GetActive(w http.ResponseWriter, r *http.Request) {
	conf := c.Service.ActiveConference()
	if conf == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no active conference")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// GetDefault godoc
// @Summary Get the default conference
// @Tags selection
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /selection/default [get]
func (c *ConferenceController) GetDefault(w http.ResponseWriter, r *http.Request) {
	conf := c.Service.DefaultConference()
	if conf == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no default conference")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// GetSlot godoc
// @Summary Find a time slot in the active conference
// @Tags selection
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Success 200 {object} helpers.APIResponse "data contains slot and date"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /slots/{slotID} [get]
func (c *ConferenceController) GetSlot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("slotID")
	slot, err := c.Service.FindSlotByID(id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	date, err := c.Service.FindDateBySlot(id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SlotResponse{Slot: slot, Date: date})
}

// orLocal returns conf, or the local copy of the titled conference when the backend
// answered without a body.
func (c *ConferenceController) orLocal(conf *domain.Conference, title string) *domain.Conference {
	if conf != nil {
		return conf
	}
	for _, local := range c.Service.Conferences() {
		if local.Title == title {
			return local
		}
	}
	return nil
}

func (c *ConferenceController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var backendErr *domain.BackendError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrNoActiveConference):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.As(err, &backendErr):
		c.Logger.WarnContext(r.Context(), "backend rejected edit", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, err.Error())
	}
}
