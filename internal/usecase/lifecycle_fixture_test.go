package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/riskibarqy/fightcard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fightcard/internal/infrastructure/transitions"
	"github.com/riskibarqy/fightcard/internal/platform/clock"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
)

var testStart = time.Date(2026, time.March, 7, 22, 0, 0, 0, time.UTC)

func at(offset time.Duration) *time.Time {
	v := testStart.Add(offset)
	return &v
}

type lifecycleHarness struct {
	clock     *clock.Fake
	events    *memory.EventRepository
	fights    *memory.FightRepository
	recorder  *transitions.Recorder
	scheduler *SectionScheduler
	poller    *FightStartPoller
}

func newLifecycleHarness(events []event.Event, fights []fight.Fight) *lifecycleHarness {
	h := &lifecycleHarness{
		clock:    clock.NewFake(testStart),
		events:   memory.NewEventRepository(events),
		recorder: transitions.NewRecorder(),
	}
	h.fights = memory.NewFightRepository(fights, h.events)
	h.scheduler = NewSectionScheduler(h.events, h.fights, h.recorder, h.clock, logging.NewNop())
	h.poller = NewFightStartPoller(h.events, h.fights, h.recorder, h.clock, time.Minute, logging.NewNop())
	return h
}

func (h *lifecycleHarness) event(t *testing.T, id string) event.Event {
	t.Helper()
	item, ok, err := h.events.GetByID(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("event %s not found: ok=%v err=%v", id, ok, err)
	}
	return item
}

func (h *lifecycleHarness) fight(t *testing.T, id string) fight.Fight {
	t.Helper()
	item, ok := h.fights.Get(id)
	if !ok {
		t.Fatalf("fight %s not found", id)
	}
	return item
}

func (h *lifecycleHarness) assertFightStatus(t *testing.T, want fight.Status, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if got := h.fight(t, id).Status; got != want {
			t.Fatalf("unexpected status for fight %s: got=%s want=%s", id, got, want)
		}
	}
}

func (h *lifecycleHarness) assertEventStatus(t *testing.T, id string, want event.Status) {
	t.Helper()
	if got := h.event(t, id).Status; got != want {
		t.Fatalf("unexpected status for event %s: got=%s want=%s", id, got, want)
	}
}

func upcomingFight(id, eventID string, card fight.CardType) fight.Fight {
	return fight.Fight{
		ID:         id,
		EventID:    eventID,
		Fighter1ID: id + "-red",
		Fighter2ID: id + "-blue",
		CardType:   card,
		Status:     fight.StatusUpcoming,
	}
}

func timeBasedEvent(id string) event.Event {
	return event.Event{
		ID:          id,
		Name:        "Fight Night " + id,
		Promotion:   "UFC",
		Date:        testStart.Add(24 * time.Hour),
		Status:      event.StatusUpcoming,
		TrackerMode: event.TrackerTimeBased,
	}
}

// flakyFightRepository fails UpdateBulk for one event a fixed number of times.
type flakyFightRepository struct {
	fight.Repository
	eventID  string
	failures atomic.Int32
}

func (r *flakyFightRepository) UpdateBulk(ctx context.Context, filter fight.Filter, patch fight.Patch) (int, error) {
	if filter.EventID == r.eventID && r.failures.Add(-1) >= 0 {
		return 0, errors.New("connection reset by peer")
	}
	return r.Repository.UpdateBulk(ctx, filter, patch)
}

// failingEventRepository fails GetByID for one event id.
type failingEventRepository struct {
	event.Repository
	failID string
}

func (r *failingEventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	if id == r.failID {
		return event.Event{}, false, errors.New("store unavailable")
	}
	return r.Repository.GetByID(ctx, id)
}

type panickingPublisher struct {
	eventID string
}

func (p panickingPublisher) Publish(_ context.Context, item transition.Transition) error {
	if item.EventID == p.eventID {
		panic("publisher exploded")
	}
	return nil
}
