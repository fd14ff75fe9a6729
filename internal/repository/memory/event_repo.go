// Package memory implements the event registry as an ordered in-memory list.
// Nothing is persisted; state is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"eventdesk/internal/domain"
)

type eventRepository struct {
	mu     sync.RWMutex
	events []*domain.Event
}

func NewEventRepository() domain.EventRepository {
	return &eventRepository{}
}

// foldKey normalises names and categories for case-insensitive comparison.
// A Caser is stateful, so a fresh one is used per call.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// indexOf returns the position of the first event whose name matches, or -1.
// Callers must hold mu.
func (r *eventRepository) indexOf(name string) int {
	key := foldKey(name)
	for i, e := range r.events {
		if foldKey(e.Name) == key {
			return i
		}
	}
	return -1
}

func cloneAll(events []*domain.Event) []*domain.Event {
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, e.Clone())
	}
	return out
}

func (r *eventRepository) Add(ctx context.Context, e *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(e.Name) >= 0 {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, e.Name)
	}
	r.events = append(r.events, e.Clone())
	return nil
}

func (r *eventRepository) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(name)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return nil
}

func (r *eventRepository) Find(ctx context.Context, name string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(name)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return r.events[i].Clone(), nil
}

// Update applies upd to the first match. Participants are left as they are.
func (r *eventRepository) Update(ctx context.Context, name string, upd domain.EventUpdate, now time.Time) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(name)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := r.events[i]
	if err := e.Apply(upd, now); err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

func (r *eventRepository) AddParticipant(ctx context.Context, name, participant string, now time.Time) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(name)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := r.events[i]
	if err := e.AddParticipant(participant); err != nil {
		return nil, err
	}
	e.UpdatedAt = now
	return e.Clone(), nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.events), nil
}

func (r *eventRepository) ListNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names, nil
}

func (r *eventRepository) FilterByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := foldKey(category)
	out := []*domain.Event{}
	for _, e := range r.events {
		if foldKey(e.Category) == key {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (r *eventRepository) ListByDateRange(ctx context.Context, dr domain.DateRange) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Event{}
	for _, e := range r.events {
		if dr.Contains(e.Date) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

// MostPopular returns the event with the most participants. Ties go to the earliest event.
func (r *eventRepository) MostPopular(ctx context.Context) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.events) == 0 {
		return nil, domain.ErrNotFound
	}
	best := r.events[0]
	for _, e := range r.events[1:] {
		if e.ParticipantCount() > best.ParticipantCount() {
			best = e
		}
	}
	return best.Clone(), nil
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events), nil
}
