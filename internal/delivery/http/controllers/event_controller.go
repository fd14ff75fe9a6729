package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name            string `json:"name" validate:"required" example:"GopherCon"`
	Date            string `json:"date" validate:"required" example:"2026-11-05"`
	Venue           string `json:"venue" example:"Main Hall"`
	MaxParticipants int    `json:"max_participants" validate:"gt=0" example:"100"`
	Category        string `json:"category" example:"Tech"`
}

// Validate implements Validator. Struct tags cover presence; this covers formats.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name != "" && strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name must not be blank")
	}
	if c.Date != "" {
		if _, err := domain.ParseDate(c.Date); err != nil {
			errs = append(errs, "date must be formatted as YYYY-MM-DD")
		}
	}
	return errs
}

func (c CreateEventRequest) input() domain.EventInput {
	return domain.EventInput{
		Name:            c.Name,
		Date:            c.Date,
		Venue:           c.Venue,
		MaxParticipants: c.MaxParticipants,
		Category:        c.Category,
	}
}

// UpdateEventRequest is the request body for PUT /events/{name}. The name itself cannot change
// and participants are never touched by an update.
type UpdateEventRequest struct {
	Date            string `json:"date" validate:"required" example:"2026-11-06"`
	Venue           string `json:"venue" example:"Room 2"`
	MaxParticipants int    `json:"max_participants" validate:"gt=0" example:"120"`
	Category        string `json:"category" example:"Tech"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Date != "" {
		if _, err := domain.ParseDate(u.Date); err != nil {
			errs = append(errs, "date must be formatted as YYYY-MM-DD")
		}
	}
	return errs
}

// RegisterParticipantRequest is the request body for POST /events/{name}/participants.
type RegisterParticipantRequest struct {
	Name string `json:"name" validate:"required" example:"Ada Lovelace"`
}

// EventDetailsResponse is the data of GET /events/{name}: the event and its text summary.
type EventDetailsResponse struct {
	Event   *domain.Event `json:"event"`
	Details string        `json:"details"`
}

// ListEventsResponse is the data of GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListParticipantsResponse is the data of GET /events/{name}/participants.
type ListParticipantsResponse struct {
	EventName    string   `json:"event_name"`
	Participants []string `json:"participants"`
}

// EventSuccessResponse is the success envelope for endpoints returning a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeServiceError maps domain errors to their status; anything else is logged and returned as 500.
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, known := helpers.ErrorStatus(err)
	if !known {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, err.Error())
}

// eventName reads the {name} path value and writes a 400 when it is blank.
func eventName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event name")
		return "", false
	}
	return name, true
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Adds an event to the registry. Names are unique ignoring case. A blank category becomes "General".
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate name)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.input())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Lists events in insertion order. Optional filters: category (case-insensitive exact match) and an inclusive from/to date range; both bounds are required together.
// @Tags events
// @Produce json
// @Param category query string false "Category"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.EventFilter
	if category := strings.TrimSpace(q.Get("category")); category != "" {
		filter.Category = &category
	}
	from, to := q.Get("from"), q.Get("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "from and to must be provided together")
			return
		}
		dr, err := domain.ParseDateRange(from, to)
		if err != nil {
			c.writeServiceError(w, r, err)
			return
		}
		filter.DateRange = &dr
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), filter, params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// ListEventNames godoc
// @Summary List event names
// @Description Returns every event name in insertion order.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of names"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-names [get]
func (c *EventController) ListEventNames(w http.ResponseWriter, r *http.Request) {
	names, err := c.Service.ListEventNames(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, names)
}

// GetEvent godoc
// @Summary Search an event by name
// @Description Case-insensitive lookup; returns the event and its text summary.
// @Tags events
// @Produce json
// @Param name path string true "Event name"
// @Success 200 {object} helpers.APIResponse "data contains event and details"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{name} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	name, ok := eventName(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetailsResponse{Event: event, Details: event.Details()})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces date, venue, max_participants and category. Participants are kept. Lowering max_participants below the current participant count is rejected.
// @Tags events
// @Accept json
// @Produce json
// @Param name path string true "Event name"
// @Param body body UpdateEventRequest true "New values"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{name} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	name, ok := eventName(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), name, domain.EventInput{
		Date:            req.Date,
		Venue:           req.Venue,
		MaxParticipants: req.MaxParticipants,
		Category:        req.Category,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes the first event whose name matches, ignoring case.
// @Tags events
// @Param name path string true "Event name"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{name} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	name, ok := eventName(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), name); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants godoc
// @Summary View participants
// @Tags participants
// @Produce json
// @Param name path string true "Event name"
// @Success 200 {object} helpers.APIResponse "data contains event_name and participants"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{name}/participants [get]
func (c *EventController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	name, ok := eventName(w, r)
	if !ok {
		return
	}
	participants, err := c.Service.ListParticipants(r.Context(), name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListParticipantsResponse{EventName: name, Participants: participants})
}

// RegisterParticipant godoc
// @Summary Register a participant
// @Description Appends a participant while the event has room.
// @Tags participants
// @Accept json
// @Produce json
// @Param name path string true "Event name"
// @Param body body RegisterParticipantRequest true "Participant"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{name}/participants [post]
func (c *EventController) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	name, ok := eventName(w, r)
	if !ok {
		return
	}
	var req RegisterParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.RegisterParticipant(r.Context(), name, req.Name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// CheckCapacity godoc
// @Summary Check venue capacity
// @Tags participants
// @Produce json
// @Param name path string true "Event name"
// @Success 200 {object} helpers.APIResponse "data contains venue, max, current and remaining"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{name}/capacity [get]
func (c *EventController) CheckCapacity(w http.ResponseWriter, r *http.Request) {
	name, ok := eventName(w, r)
	if !ok {
		return
	}
	capacity, err := c.Service.CheckCapacity(r.Context(), name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, capacity)
}

// Stats godoc
// @Summary Event statistics
// @Description Total number of events and the name of the most popular one (null when there are none).
// @Tags stats
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains total_events and most_popular"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stats [get]
func (c *EventController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// MostPopular godoc
// @Summary Most popular event
// @Description The event with the most participants; ties go to the earliest added.
// @Tags stats
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains event and details"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no events)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stats/most-popular [get]
func (c *EventController) MostPopular(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.MostPopularEvent(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetailsResponse{Event: event, Details: event.Details()})
}
