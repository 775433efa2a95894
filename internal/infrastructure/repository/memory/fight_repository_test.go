package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFightRepository_UpdateBulkBySectionAlias(t *testing.T) {
	t.Parallel()

	events := NewEventRepository([]event.Event{{ID: "ev-1", Status: event.StatusLive}})
	repo := NewFightRepository([]fight.Fight{
		{ID: "a", EventID: "ev-1", CardType: fight.CardMain, Status: fight.StatusUpcoming},
		{ID: "b", EventID: "ev-1", CardType: fight.CardMainEvent, Status: fight.StatusLive},
		{ID: "c", EventID: "ev-1", CardType: fight.CardPrelims, Status: fight.StatusUpcoming},
		{ID: "d", EventID: "ev-1", CardType: fight.CardMain, Status: fight.StatusCancelled},
	}, events)

	completed := fight.StatusCompleted
	method := event.MethodTimeBased
	at := time.Date(2026, time.May, 2, 3, 0, 0, 0, time.UTC)

	n, err := repo.UpdateBulk(context.Background(), fight.Filter{
		EventID:  "ev-1",
		Statuses: []fight.Status{fight.StatusUpcoming, fight.StatusLive},
		Section:  fight.CardMain,
	}, fight.Patch{Status: &completed, CompletionMethod: &method, CompletedAt: &at})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, id := range []string{"a", "b"} {
		item, ok := repo.Get(id)
		require.True(t, ok)
		assert.Equal(t, fight.StatusCompleted, item.Status)
		assert.Equal(t, event.MethodTimeBased, item.CompletionMethod)
		require.NotNil(t, item.CompletedAt)
		assert.True(t, item.CompletedAt.Equal(at))
	}

	prelim, _ := repo.Get("c")
	assert.Equal(t, fight.StatusUpcoming, prelim.Status)
	cancelled, _ := repo.Get("d")
	assert.Equal(t, fight.StatusCancelled, cancelled.Status)
}

func TestFightRepository_TrackerModeFilterUsesParentEvent(t *testing.T) {
	t.Parallel()

	events := NewEventRepository([]event.Event{
		{ID: "clock", TrackerMode: event.TrackerTimeBased},
		{ID: "scrape", TrackerMode: event.TrackerLiveScrape},
	})
	repo := NewFightRepository([]fight.Fight{
		{ID: "f1", EventID: "clock", Status: fight.StatusUpcoming},
		{ID: "f2", EventID: "scrape", Status: fight.StatusUpcoming},
		{ID: "f3", EventID: "missing", Status: fight.StatusUpcoming},
	}, events)

	items, err := repo.Find(context.Background(), fight.Filter{TrackerMode: event.TrackerTimeBased})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "f1", items[0].ID)
}

func TestEventRepository_UpdateRespectsStatusGuard(t *testing.T) {
	t.Parallel()

	repo := NewEventRepository([]event.Event{{ID: "ev-1", Status: event.StatusCompleted}})
	live := event.StatusLive

	updated, err := repo.Update(context.Background(), "ev-1", event.Patch{
		Status:       &live,
		WhenStatusIn: []event.Status{event.StatusUpcoming},
	})
	require.NoError(t, err)
	assert.False(t, updated)

	item, ok, err := repo.GetByID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, event.StatusCompleted, item.Status)
}

func TestEventRepository_FindOrdersByDate(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := NewEventRepository([]event.Event{
		{ID: "late", Date: base.Add(48 * time.Hour), Status: event.StatusUpcoming},
		{ID: "done", Date: base, Status: event.StatusCompleted},
		{ID: "early", Date: base.Add(24 * time.Hour), Status: event.StatusLive},
	})

	items, err := repo.Find(context.Background(), event.Filter{ExcludeStatuses: []event.Status{event.StatusCompleted}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "early", items[0].ID)
	assert.Equal(t, "late", items[1].ID)
}
