package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err             error
	event           *domain.Event
	events          []*domain.Event
	total           int
	names           []string
	stats           *domain.EventStats
	capacity        *domain.VenueCapacity
	participants    []string
	lastName        string
	lastInput       domain.EventInput
	lastFilter      domain.EventFilter
	lastParams      domain.PaginationParams
	lastParticipant string
	deleteCalled    bool
}

func (f *fakeEventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	f.lastInput = in
	return f.event, f.err
}

func (f *fakeEventService) GetEvent(ctx context.Context, name string) (*domain.Event, error) {
	f.lastName = name
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, name string, in domain.EventInput) (*domain.Event, error) {
	f.lastName = name
	f.lastInput = in
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, name string) error {
	f.lastName = name
	f.deleteCalled = true
	return f.err
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastFilter = filter
	f.lastParams = params
	return f.events, f.total, f.err
}

func (f *fakeEventService) ListEventNames(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

func (f *fakeEventService) MostPopularEvent(ctx context.Context) (*domain.Event, error) {
	return f.event, f.err
}

func (f *fakeEventService) Stats(ctx context.Context) (*domain.EventStats, error) {
	return f.stats, f.err
}

func (f *fakeEventService) ListParticipants(ctx context.Context, name string) ([]string, error) {
	f.lastName = name
	return f.participants, f.err
}

func (f *fakeEventService) RegisterParticipant(ctx context.Context, name, participant string) (*domain.Event, error) {
	f.lastName = name
	f.lastParticipant = participant
	return f.event, f.err
}

func (f *fakeEventService) CheckCapacity(ctx context.Context, name string) (*domain.VenueCapacity, error) {
	f.lastName = name
	return f.capacity, f.err
}

func sampleEvent() *domain.Event {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	e := domain.NewEvent("GopherCon", domain.NewDate(2026, 11, 5), "Main Hall", 100, "Tech", now, now)
	e.ID = "ev-1"
	e.Slug = "gophercon"
	e.Participants = []string{"alice"}
	return e
}

// decodeEnvelope decodes the response envelope and, when data is non-nil, unmarshals Data into it.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if data != nil && envelope.Data != nil {
		b, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, data))
	}
	return envelope
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantCode       string
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"name":"GopherCon","date":"2026-11-05","venue":"Main Hall","max_participants":100,"category":"Tech"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "non numeric capacity",
			body:           `{"name":"X","date":"2026-11-05","max_participants":"lots"}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "max_participants",
		},
		{
			name:           "missing fields",
			body:           `{}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "name is required; date is required; max_participants must be greater than 0",
		},
		{
			name:           "malformed date",
			body:           `{"name":"X","date":"05/11/2026","max_participants":1}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "YYYY-MM-DD",
		},
		{
			name:           "unknown field rejected",
			body:           `{"name":"X","date":"2026-11-05","max_participants":1,"participants":["a"]}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "duplicate name",
			body:           `{"name":"GopherCon","date":"2026-11-05","max_participants":1}`,
			fakeErr:        fmt.Errorf("%w: %q", domain.ErrDuplicateName, "GopherCon"),
			wantStatus:     http.StatusConflict,
			wantCode:       helpers.ErrCodeConflict,
			wantBodySubstr: "already in use",
		},
		{
			name:           "service error",
			body:           `{"name":"X","date":"2026-11-05","max_participants":1}`,
			fakeErr:        errors.New("boom"),
			wantStatus:     http.StatusInternalServerError,
			wantCode:       helpers.ErrCodeInternalError,
			wantBodySubstr: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr, event: sampleEvent()}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var event domain.Event
			envelope := decodeEnvelope(t, rr, &event)
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				assert.Equal(t, "ev-1", event.ID)
				assert.Equal(t, domain.NewDate(2026, 11, 5), event.Date)
				assert.Equal(t, domain.EventInput{
					Name: "GopherCon", Date: "2026-11-05", Venue: "Main Hall", MaxParticipants: 100, Category: "Tech",
				}, fake.lastInput)
				return
			}
			require.NotNil(t, envelope.Error, "error response must have error set")
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name       string
		pathName   string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{"success", "gophercon", nil, http.StatusOK, ""},
		{"blank name", " ", nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"not found", "nope", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"service error", "x", errors.New("boom"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr, event: sampleEvent()}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/events/x", nil)
			req.SetPathValue("name", tt.pathName)
			rr := httptest.NewRecorder()

			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var data EventDetailsResponse
			envelope := decodeEnvelope(t, rr, &data)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "gophercon", fake.lastName)
				assert.Equal(t, "GopherCon", data.Event.Name)
				assert.Contains(t, data.Details, "Name: GopherCon\nDate: 2026-11-05")
				assert.Contains(t, data.Details, "Current Participants: 1")
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantStatus   int
		checkFilter  func(t *testing.T, f domain.EventFilter)
		wantPageSize int
	}{
		{
			name:       "no filters",
			query:      "",
			wantStatus: http.StatusOK,
			checkFilter: func(t *testing.T, f domain.EventFilter) {
				assert.Nil(t, f.Category)
				assert.Nil(t, f.DateRange)
			},
			wantPageSize: helpers.DefaultPageSize,
		},
		{
			name:       "category and range",
			query:      "?category=Music&from=2026-01-01&to=2026-01-31&page_size=5",
			wantStatus: http.StatusOK,
			checkFilter: func(t *testing.T, f domain.EventFilter) {
				require.NotNil(t, f.Category)
				assert.Equal(t, "Music", *f.Category)
				require.NotNil(t, f.DateRange)
				assert.Equal(t, domain.NewDate(2026, 1, 1), f.DateRange.Start)
				assert.Equal(t, domain.NewDate(2026, 1, 31), f.DateRange.End)
			},
			wantPageSize: 5,
		},
		{name: "only from", query: "?from=2026-01-01", wantStatus: http.StatusBadRequest},
		{name: "malformed date", query: "?from=2026-01-01&to=January", wantStatus: http.StatusBadRequest},
		{name: "reversed range", query: "?from=2026-02-01&to=2026-01-01", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{events: []*domain.Event{sampleEvent()}, total: 1}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/events"+tt.query, nil)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var data ListEventsResponse
			envelope := decodeEnvelope(t, rr, &data)
			if tt.wantStatus != http.StatusOK {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
				return
			}
			tt.checkFilter(t, fake.lastFilter)
			assert.Equal(t, tt.wantPageSize, fake.lastParams.PageSize)
			require.Len(t, data.Events, 1)
			assert.Equal(t, 1, data.Pagination.Total)
			assert.Equal(t, 1, data.Pagination.TotalPages)
		})
	}
}

func TestEventController_ListEventNames(t *testing.T) {
	fake := &fakeEventService{names: []string{"B", "A"}}
	ctrl := NewEventController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.ListEventNames(rr, httptest.NewRequest(http.MethodGet, "/event-names", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var names []string
	decodeEnvelope(t, rr, &names)
	assert.Equal(t, []string{"B", "A"}, names)
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{"success", `{"date":"2026-12-01","venue":"Lab","max_participants":5}`, nil, http.StatusOK, ""},
		{"zero capacity", `{"date":"2026-12-01","max_participants":0}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"cannot rename", `{"name":"Other","date":"2026-12-01","max_participants":5}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"not found", `{"date":"2026-12-01","max_participants":5}`, domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"below participant count", `{"date":"2026-12-01","max_participants":1}`, domain.ErrCapacityExceeded, http.StatusConflict, helpers.ErrCodeCapacityExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr, event: sampleEvent()}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPut, "/events/GopherCon", bytes.NewBufferString(tt.body))
			req.SetPathValue("name", "GopherCon")
			rr := httptest.NewRecorder()

			ctrl.UpdateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr, nil)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "GopherCon", fake.lastName)
				assert.Equal(t, domain.EventInput{Date: "2026-12-01", Venue: "Lab", MaxParticipants: 5}, fake.lastInput)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"service error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "/events/Old%20Event", nil)
			req.SetPathValue("name", "Old Event")
			rr := httptest.NewRecorder()

			ctrl.DeleteEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.True(t, fake.deleteCalled)
			assert.Equal(t, "Old Event", fake.lastName)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}

func TestEventController_Participants(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		fake := &fakeEventService{participants: []string{"alice", "bob"}}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/events/GopherCon/participants", nil)
		req.SetPathValue("name", "GopherCon")
		rr := httptest.NewRecorder()

		ctrl.ListParticipants(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var data ListParticipantsResponse
		decodeEnvelope(t, rr, &data)
		assert.Equal(t, "GopherCon", data.EventName)
		assert.Equal(t, []string{"alice", "bob"}, data.Participants)
	})

	registerTests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{"registered", `{"name":"carol"}`, nil, http.StatusCreated, ""},
		{"missing name", `{}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"full", `{"name":"carol"}`, domain.ErrCapacityExceeded, http.StatusConflict, helpers.ErrCodeCapacityExceeded},
		{"no event", `{"name":"carol"}`, domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
	}
	for _, tt := range registerTests {
		t.Run("register "+tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr, event: sampleEvent()}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events/GopherCon/participants", bytes.NewBufferString(tt.body))
			req.SetPathValue("name", "GopherCon")
			rr := httptest.NewRecorder()

			ctrl.RegisterParticipant(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr, nil)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "carol", fake.lastParticipant)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestEventController_CheckCapacity(t *testing.T) {
	fake := &fakeEventService{capacity: &domain.VenueCapacity{
		EventName: "GopherCon", Venue: "Main Hall", MaxParticipants: 100, CurrentParticipants: 1, Remaining: 99,
	}}
	ctrl := NewEventController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/events/gophercon/capacity", nil)
	req.SetPathValue("name", "gophercon")
	rr := httptest.NewRecorder()

	ctrl.CheckCapacity(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var data domain.VenueCapacity
	decodeEnvelope(t, rr, &data)
	assert.Equal(t, *fake.capacity, data)
}

func TestEventController_StatsAndMostPopular(t *testing.T) {
	t.Run("stats", func(t *testing.T) {
		name := "GopherCon"
		fake := &fakeEventService{stats: &domain.EventStats{TotalEvents: 3, MostPopular: &name}}
		ctrl := NewEventController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.Stats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var data domain.EventStats
		decodeEnvelope(t, rr, &data)
		assert.Equal(t, 3, data.TotalEvents)
		require.NotNil(t, data.MostPopular)
		assert.Equal(t, "GopherCon", *data.MostPopular)
	})

	t.Run("most popular", func(t *testing.T) {
		fake := &fakeEventService{event: sampleEvent()}
		ctrl := NewEventController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.MostPopular(rr, httptest.NewRequest(http.MethodGet, "/stats/most-popular", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var data EventDetailsResponse
		decodeEnvelope(t, rr, &data)
		assert.Equal(t, "GopherCon", data.Event.Name)
	})

	t.Run("most popular empty registry", func(t *testing.T) {
		fake := &fakeEventService{err: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.MostPopular(rr, httptest.NewRequest(http.MethodGet, "/stats/most-popular", nil))

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeEnvelope(t, rr, nil)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})
}
