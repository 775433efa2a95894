package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/fight"
)

type FightRepository struct {
	mu     sync.RWMutex
	items  map[string]fight.Fight
	orders []string
	events *EventRepository
}

// NewFightRepository builds a fight store. events resolves tracker modes for
// filters that join on the parent event and may be nil.
func NewFightRepository(fights []fight.Fight, events *EventRepository) *FightRepository {
	items := make(map[string]fight.Fight, len(fights))
	orders := make([]string, 0, len(fights))

	for _, f := range fights {
		if _, exists := items[f.ID]; !exists {
			orders = append(orders, f.ID)
		}
		items[f.ID] = cloneFight(f)
	}

	return &FightRepository{
		items:  items,
		orders: orders,
		events: events,
	}
}

func (r *FightRepository) Find(_ context.Context, filter fight.Filter) ([]fight.Fight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fight.Fight, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if !r.matches(filter, item) {
			continue
		}
		out = append(out, cloneFight(item))
	}
	return out, nil
}

func (r *FightRepository) Count(_ context.Context, filter fight.Filter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.orders {
		if r.matches(filter, r.items[id]) {
			count++
		}
	}
	return count, nil
}

func (r *FightRepository) UpdateBulk(_ context.Context, filter fight.Filter, patch fight.Patch) (int, error) {
	if patch.Empty() {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for _, id := range r.orders {
		item := r.items[id]
		if !r.matches(filter, item) {
			continue
		}
		if patch.Status != nil {
			item.Status = *patch.Status
		}
		if patch.CompletionMethod != nil {
			item.CompletionMethod = *patch.CompletionMethod
		}
		if patch.CompletedAt != nil {
			item.CompletedAt = cloneTime(patch.CompletedAt)
		}
		r.items[id] = item
		updated++
	}
	return updated, nil
}

func (r *FightRepository) SetScheduledStartTime(_ context.Context, id string, at *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	item.ScheduledStartTime = cloneTime(at)
	r.items[id] = item
	return true, nil
}

// Get returns one fight by id.
func (r *FightRepository) Get(id string) (fight.Fight, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return fight.Fight{}, false
	}
	return cloneFight(item), true
}

// Upsert stores a fight as an ingestion collaborator would.
func (r *FightRepository) Upsert(item fight.Fight) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = cloneFight(item)
}

func (r *FightRepository) matches(filter fight.Filter, item fight.Fight) bool {
	if !filter.Matches(item) {
		return false
	}
	if filter.TrackerMode == "" {
		return true
	}
	if r.events == nil {
		return false
	}
	parent, ok := r.events.get(item.EventID)
	return ok && parent.TrackerMode == filter.TrackerMode
}

func cloneFight(item fight.Fight) fight.Fight {
	item.ScheduledStartTime = cloneTime(item.ScheduledStartTime)
	item.CompletedAt = cloneTime(item.CompletedAt)
	return item
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
