package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/fightcard/internal/domain/event"
)

type EventRepository struct {
	mu     sync.RWMutex
	items  map[string]event.Event
	orders []string
}

func NewEventRepository(events []event.Event) *EventRepository {
	items := make(map[string]event.Event, len(events))
	orders := make([]string, 0, len(events))

	for _, e := range events {
		if _, exists := items[e.ID]; !exists {
			orders = append(orders, e.ID)
		}
		items[e.ID] = cloneEvent(e)
	}

	return &EventRepository{
		items:  items,
		orders: orders,
	}
}

func (r *EventRepository) Find(_ context.Context, filter event.Filter) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.orders))
	for _, id := range r.orders {
		item := r.items[id]
		if !filter.Matches(item) {
			continue
		}
		out = append(out, cloneEvent(item))
	}

	slices.SortStableFunc(out, func(a, b event.Event) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (event.Event, bool, error) {
	item, ok := r.get(id)
	return item, ok, nil
}

func (r *EventRepository) Update(_ context.Context, id string, patch event.Patch) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	if len(patch.WhenStatusIn) > 0 && !slices.Contains(patch.WhenStatusIn, item.Status) {
		return false, nil
	}

	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.CompletionMethod != nil {
		item.CompletionMethod = *patch.CompletionMethod
	}
	r.items[id] = item
	return true, nil
}

// Upsert stores an event as an ingestion collaborator would.
func (r *EventRepository) Upsert(item event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = cloneEvent(item)
}

func (r *EventRepository) get(id string) (event.Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return event.Event{}, false
	}
	return cloneEvent(item), true
}

func cloneEvent(item event.Event) event.Event {
	item.EarlyPrelimStartTime = cloneTime(item.EarlyPrelimStartTime)
	item.PrelimStartTime = cloneTime(item.PrelimStartTime)
	item.MainStartTime = cloneTime(item.MainStartTime)
	return item
}
