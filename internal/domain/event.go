package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is assigned to events created or updated without a category.
const DefaultCategory = "General"

// Event represents a named activity with a date, venue, capacity and participant list.
// swagger:model Event
type Event struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Date            Date      `json:"date" swaggertype:"string" example:"2026-11-05"`
	Venue           string    `json:"venue"`
	MaxParticipants int       `json:"max_participants"`
	Category        string    `json:"category"`
	Participants    []string  `json:"participants"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields and no participants.
// A blank category becomes DefaultCategory. ID and Slug are set by the service on create.
func NewEvent(name string, date Date, venue string, maxParticipants int, category string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:            name,
		Date:            date,
		Venue:           venue,
		MaxParticipants: maxParticipants,
		Category:        CategoryOrDefault(category),
		Participants:    []string{},
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// CategoryOrDefault trims category and falls back to DefaultCategory when blank.
func CategoryOrDefault(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// AddParticipant appends name if the event still has room, otherwise returns ErrCapacityExceeded.
func (e *Event) AddParticipant(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: participant name is required", ErrInvalidInput)
	}
	if len(e.Participants) >= e.MaxParticipants {
		return fmt.Errorf("%w: %q admits %d participants", ErrCapacityExceeded, e.Name, e.MaxParticipants)
	}
	e.Participants = append(e.Participants, name)
	return nil
}

// ParticipantCount returns the number of registered participants.
func (e *Event) ParticipantCount() int {
	return len(e.Participants)
}

// Details returns a multi-line summary of the event.
func (e *Event) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", e.Name)
	fmt.Fprintf(&b, "Date: %s\n", e.Date)
	fmt.Fprintf(&b, "Venue: %s\n", e.Venue)
	fmt.Fprintf(&b, "Category: %s\n", e.Category)
	fmt.Fprintf(&b, "Max Participants: %d\n", e.MaxParticipants)
	fmt.Fprintf(&b, "Current Participants: %d", e.ParticipantCount())
	return b.String()
}

// Capacity reports venue occupancy for the event.
func (e *Event) Capacity() *VenueCapacity {
	remaining := e.MaxParticipants - e.ParticipantCount()
	if remaining < 0 {
		remaining = 0
	}
	return &VenueCapacity{
		EventName:           e.Name,
		Venue:               e.Venue,
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.ParticipantCount(),
		Remaining:           remaining,
	}
}

// Apply replaces date, venue, capacity and category. Participants are left as they are.
// Lowering capacity below the current participant count returns ErrCapacityExceeded
// and leaves the event unchanged.
func (e *Event) Apply(upd EventUpdate, now time.Time) error {
	if upd.MaxParticipants < e.ParticipantCount() {
		return fmt.Errorf("%w: %q already has %d participants", ErrCapacityExceeded, e.Name, e.ParticipantCount())
	}
	e.Date = upd.Date
	e.Venue = upd.Venue
	e.MaxParticipants = upd.MaxParticipants
	e.Category = CategoryOrDefault(upd.Category)
	e.UpdatedAt = now
	return nil
}

// Clone returns a deep copy so callers never share the participant slice.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.Participants = append(make([]string, 0, len(e.Participants)), e.Participants...)
	return &c
}

// VenueCapacity is the capacity view of an event.
// swagger:model VenueCapacity
type VenueCapacity struct {
	EventName           string `json:"event_name"`
	Venue               string `json:"venue"`
	MaxParticipants     int    `json:"max_participants"`
	CurrentParticipants int    `json:"current_participants"`
	Remaining           int    `json:"remaining"`
}

// EventUpdate carries the fields replaced by an update. Participants are never touched.
type EventUpdate struct {
	Date            Date
	Venue           string
	MaxParticipants int
	Category        string
}

// EventFilter narrows ListEvents. Nil fields are not applied.
type EventFilter struct {
	Category  *string
	DateRange *DateRange
}

// EventInput is the validated-by-service input for create and update.
type EventInput struct {
	Name            string
	Date            string
	Venue           string
	MaxParticipants int
	Category        string
}

// EventStats summarises the registry.
// swagger:model EventStats
type EventStats struct {
	TotalEvents int     `json:"total_events"`
	MostPopular *string `json:"most_popular"`
}

// EventRepository defines the interface for event storage.
// Name lookups are case-insensitive and the first match in insertion order wins.
type EventRepository interface {
	Add(ctx context.Context, event *Event) error
	Remove(ctx context.Context, name string) error
	Find(ctx context.Context, name string) (*Event, error)
	Update(ctx context.Context, name string, upd EventUpdate, now time.Time) (*Event, error)
	AddParticipant(ctx context.Context, name, participant string, now time.Time) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListNames(ctx context.Context) ([]string, error)
	FilterByCategory(ctx context.Context, category string) ([]*Event, error)
	ListByDateRange(ctx context.Context, r DateRange) ([]*Event, error)
	MostPopular(ctx context.Context) (*Event, error)
	Count(ctx context.Context) (int, error)
}

// EventService defines the event operations exposed to the presentation layer.
type EventService interface {
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	GetEvent(ctx context.Context, name string) (*Event, error)
	UpdateEvent(ctx context.Context, name string, in EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, name string) error
	// ListEvents returns one page of events matching filter together with the total match count.
	ListEvents(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	ListEventNames(ctx context.Context) ([]string, error)
	MostPopularEvent(ctx context.Context) (*Event, error)
	Stats(ctx context.Context) (*EventStats, error)
	ListParticipants(ctx context.Context, name string) ([]string, error)
	RegisterParticipant(ctx context.Context, name, participant string) (*Event, error)
	CheckCapacity(ctx context.Context, name string) (*VenueCapacity, error)
}
