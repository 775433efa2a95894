package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/stretchr/testify/require"
)

func scheduledFight(id, eventID string, start *time.Time) fight.Fight {
	item := upcomingFight(id, eventID, fight.CardMain)
	item.ScheduledStartTime = start
	return item
}

func TestFightStartPoller_SweepPromotesDueFight(t *testing.T) {
	t.Parallel()

	h := newLifecycleHarness(
		[]event.Event{timeBasedEvent("ev-1")},
		[]fight.Fight{
			scheduledFight("due", "ev-1", at(-time.Second)),
			scheduledFight("later", "ev-1", at(time.Hour)),
			upcomingFight("unset", "ev-1", fight.CardMain),
		},
	)

	promoted, err := h.poller.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if promoted != 1 {
		t.Fatalf("unexpected promoted count: got=%d want=1", promoted)
	}

	due := h.fight(t, "due")
	if due.Status != fight.StatusLive || due.CompletionMethod != event.MethodTimeBased {
		t.Fatalf("unexpected fight state: status=%s method=%s", due.Status, due.CompletionMethod)
	}
	h.assertFightStatus(t, fight.StatusUpcoming, "later", "unset")
	h.assertEventStatus(t, "ev-1", event.StatusLive)

	if got := len(h.recorder.Filter(transition.KindFight, "ev-1")); got != 1 {
		t.Fatalf("expected one fight transition, got %d", got)
	}

	again, err := h.poller.Sweep(context.Background())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if again != 0 {
		t.Fatalf("second sweep should be a no-op, promoted=%d", again)
	}
}

func TestFightStartPoller_SweepIgnoresOtherTrackers(t *testing.T) {
	t.Parallel()

	scrape := timeBasedEvent("ev-scrape")
	scrape.TrackerMode = event.TrackerLiveScrape
	unset := timeBasedEvent("ev-unset")
	unset.TrackerMode = ""
	cancelled := scheduledFight("cancelled", "ev-clock", at(-time.Minute))
	cancelled.Status = fight.StatusCancelled

	h := newLifecycleHarness(
		[]event.Event{scrape, unset, timeBasedEvent("ev-clock")},
		[]fight.Fight{
			scheduledFight("scraped", "ev-scrape", at(-time.Minute)),
			scheduledFight("unset", "ev-unset", at(-time.Minute)),
			cancelled,
		},
	)

	promoted, err := h.poller.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if promoted != 0 {
		t.Fatalf("expected no promotions, got %d", promoted)
	}
	h.assertFightStatus(t, fight.StatusUpcoming, "scraped", "unset")
	h.assertFightStatus(t, fight.StatusCancelled, "cancelled")
	h.assertEventStatus(t, "ev-scrape", event.StatusUpcoming)
	h.assertEventStatus(t, "ev-clock", event.StatusUpcoming)
}

func TestFightStartPoller_SweepKeepsCompletedEvent(t *testing.T) {
	t.Parallel()

	done := timeBasedEvent("ev-done")
	done.Status = event.StatusCompleted
	h := newLifecycleHarness(
		[]event.Event{done},
		[]fight.Fight{scheduledFight("late", "ev-done", at(-time.Minute))},
	)

	if _, err := h.poller.Sweep(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	h.assertEventStatus(t, "ev-done", event.StatusCompleted)
}

func TestFightStartPoller_StartSweepsImmediatelyAndOnTick(t *testing.T) {
	t.Parallel()

	h := newLifecycleHarness(
		[]event.Event{timeBasedEvent("ev-1")},
		[]fight.Fight{
			scheduledFight("first", "ev-1", at(-time.Second)),
			scheduledFight("second", "ev-1", at(30*time.Second)),
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.poller.Start(ctx)
	h.poller.Start(ctx)

	require.Eventually(t, func() bool {
		return h.fight(t, "first").Status == fight.StatusLive
	}, time.Second, 5*time.Millisecond)
	h.assertFightStatus(t, fight.StatusUpcoming, "second")

	require.Eventually(t, func() bool {
		h.clock.Advance(time.Minute)
		return h.fight(t, "second").Status == fight.StatusLive
	}, time.Second, 10*time.Millisecond)

	h.poller.Stop()
	h.poller.Stop()
}

func TestFightStartPoller_StopWithoutStart(t *testing.T) {
	t.Parallel()

	h := newLifecycleHarness(nil, nil)
	h.poller.Stop()
}
