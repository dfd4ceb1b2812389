package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

type eventService struct {
	events   ports.EventRepository
	accounts ports.AccountRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(events ports.EventRepository, accounts ports.AccountRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, accounts: accounts, now: time.Now, log: log}
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) Upcoming(ctx context.Context) ([]*domain.Event, error) {
	return s.events.StartingAfter(ctx, s.now().UTC())
}

func (s *eventService) Past(ctx context.Context) ([]*domain.Event, error) {
	return s.events.EndedBefore(ctx, s.now().UTC())
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *eventService) Create(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	ev := &domain.Event{}
	if err := s.apply(ctx, ev, in); err != nil {
		return nil, err
	}
	created, err := s.events.Create(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.log.Info().Str("event_id", created.ID).Str("teacher_id", created.TeacherID).Msg("event created")
	return created, nil
}

func (s *eventService) Update(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, ev, in); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return ev, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.events.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// apply validates in and copies it onto ev. The host must hold TEACHER.
func (s *eventService) apply(ctx context.Context, ev *domain.Event, in ports.EventInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.Type) == "" {
		return fmt.Errorf("%w: title, location and type are required", domain.ErrInvalidInput)
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() || !in.EndTime.After(in.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}

	teacher, err := s.accounts.FindByID(ctx, in.TeacherID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTeacherNotFound
		}
		return fmt.Errorf("load teacher: %w", err)
	}
	if !teacher.HasRole(domain.RoleTeacher) {
		return domain.ErrNotATeacher
	}

	ev.Title = strings.TrimSpace(in.Title)
	ev.Description = in.Description
	ev.StartTime = in.StartTime.UTC()
	ev.EndTime = in.EndTime.UTC()
	ev.Location = strings.TrimSpace(in.Location)
	ev.Type = strings.TrimSpace(in.Type)
	ev.TeacherID = teacher.ID
	return nil
}
