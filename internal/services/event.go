package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"eventdesk/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// validateEventInput checks the fields shared by create and update and returns the parsed date.
// All problems are reported together, wrapped in ErrInvalidInput.
func validateEventInput(in domain.EventInput, requireName bool) (domain.Date, error) {
	var errs []string
	if requireName && strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	date, dateErr := domain.ParseDate(in.Date)
	if dateErr != nil {
		errs = append(errs, "date must be formatted as YYYY-MM-DD")
	}
	if in.MaxParticipants <= 0 {
		errs = append(errs, "max_participants must be positive")
	}
	if len(errs) > 0 {
		return domain.Date{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	return date, nil
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	date, err := validateEventInput(in, true)
	if err != nil {
		return nil, err
	}

	now := s.now()
	name := strings.TrimSpace(in.Name)
	event := domain.NewEvent(name, date, strings.TrimSpace(in.Venue), in.MaxParticipants, in.Category, now, now)
	event.ID = uuid.NewString()
	event.Slug = slug.Make(name)

	if err := s.eventRepo.Add(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("add event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "name", event.Name)
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, name string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.Find(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

// UpdateEvent replaces date, venue, max_participants and category. The name in the
// input is ignored; events are never renamed.
func (s *eventService) UpdateEvent(ctx context.Context, name string, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	date, err := validateEventInput(in, false)
	if err != nil {
		return nil, err
	}
	upd := domain.EventUpdate{
		Date:            date,
		Venue:           strings.TrimSpace(in.Venue),
		MaxParticipants: in.MaxParticipants,
		Category:        in.Category,
	}
	event, err := s.eventRepo.Update(ctx, name, upd, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrCapacityExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.logger.InfoContext(ctx, "event updated", "event_id", event.ID, "name", event.Name)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Remove(ctx, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", "name", name)
	return nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		events []*domain.Event
		err    error
	)
	switch {
	case filter.Category != nil:
		events, err = s.eventRepo.FilterByCategory(ctx, *filter.Category)
	case filter.DateRange != nil:
		events, err = s.eventRepo.ListByDateRange(ctx, *filter.DateRange)
	default:
		events, err = s.eventRepo.List(ctx)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	// Both filters may be set; the category result is narrowed by date here.
	if filter.Category != nil && filter.DateRange != nil {
		narrowed := make([]*domain.Event, 0, len(events))
		for _, e := range events {
			if filter.DateRange.Contains(e.Date) {
				narrowed = append(narrowed, e)
			}
		}
		events = narrowed
	}
	total := len(events)
	return domain.Paginate(events, params), total, nil
}

func (s *eventService) ListEventNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	names, err := s.eventRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event names: %w", err)
	}
	return names, nil
}

func (s *eventService) MostPopularEvent(ctx context.Context) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.MostPopular(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("most popular event: %w", err)
	}
	return event, nil
}

func (s *eventService) Stats(ctx context.Context) (*domain.EventStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	stats := &domain.EventStats{TotalEvents: total}
	popular, err := s.eventRepo.MostPopular(ctx)
	switch {
	case err == nil:
		stats.MostPopular = &popular.Name
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("most popular event: %w", err)
	}
	return stats, nil
}

func (s *eventService) ListParticipants(ctx context.Context, name string) ([]string, error) {
	event, err := s.GetEvent(ctx, name)
	if err != nil {
		return nil, err
	}
	return event.Participants, nil
}

func (s *eventService) RegisterParticipant(ctx context.Context, name, participant string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.AddParticipant(ctx, name, participant, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrCapacityExceeded) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("add participant: %w", err)
	}
	s.logger.InfoContext(ctx, "participant registered", "event_id", event.ID, "participants", event.ParticipantCount())
	return event, nil
}

func (s *eventService) CheckCapacity(ctx context.Context, name string) (*domain.VenueCapacity, error) {
	event, err := s.GetEvent(ctx, name)
	if err != nil {
		return nil, err
	}
	return event.Capacity(), nil
}
