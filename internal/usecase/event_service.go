package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
)

type EventService struct {
	eventRepo event.Repository
	fightRepo fight.Repository
}

func NewEventService(eventRepo event.Repository, fightRepo fight.Repository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		fightRepo: fightRepo,
	}
}

func (s *EventService) ListEvents(ctx context.Context, statuses []string) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListEvents")
	defer span.End()

	filter := event.Filter{}
	for _, raw := range statuses {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		status := event.NormalizeStatus(raw)
		switch status {
		case event.StatusUpcoming, event.StatusLive, event.StatusCompleted:
			filter.Statuses = append(filter.Statuses, status)
		default:
			return nil, fmt.Errorf("%w: unknown event status %q", ErrInvalidInput, raw)
		}
	}

	events, err := s.eventRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return events, nil
}

func (s *EventService) ListFightsByEvent(ctx context.Context, eventID string) ([]fight.Fight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListFightsByEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	fights, err := s.fightRepo.Find(ctx, fight.Filter{EventID: eventID})
	if err != nil {
		return nil, fmt.Errorf("find fights by event: %w", err)
	}
	return fights, nil
}

// SetScheduledStartTime sets or clears (nil) the admin start time the fight
// start poller acts on.
func (s *EventService) SetScheduledStartTime(ctx context.Context, fightID string, at *time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.SetScheduledStartTime")
	defer span.End()

	fightID = strings.TrimSpace(fightID)
	if fightID == "" {
		return fmt.Errorf("%w: fight id is required", ErrInvalidInput)
	}
	if at != nil {
		utc := at.UTC()
		at = &utc
	}

	updated, err := s.fightRepo.SetScheduledStartTime(ctx, fightID, at)
	if err != nil {
		return fmt.Errorf("set scheduled start time: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: fight=%s", ErrNotFound, fightID)
	}
	return nil
}
