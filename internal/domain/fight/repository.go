package fight

import (
	"context"
	"slices"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
)

// Filter selects fights. Empty fields do not constrain the result.
type Filter struct {
	IDs      []string
	EventID  string
	Statuses []Status
	// Section matches by card type with Main Card/Main Event aliasing.
	// Empty or CardAll matches every section.
	Section          CardType
	ScheduledBefore  *time.Time
	TrackerMode      event.TrackerMode
	CompletionMethod event.CompletionMethod
}

// Matches evaluates every field except TrackerMode, which needs the parent event.
func (f Filter) Matches(item Fight) bool {
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, item.ID) {
		return false
	}
	if f.EventID != "" && item.EventID != f.EventID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, item.Status) {
		return false
	}
	if !item.CardType.InSection(f.Section) {
		return false
	}
	if f.ScheduledBefore != nil {
		if item.ScheduledStartTime == nil || item.ScheduledStartTime.After(*f.ScheduledBefore) {
			return false
		}
	}
	if f.CompletionMethod != "" && item.CompletionMethod != f.CompletionMethod {
		return false
	}
	return true
}

type Patch struct {
	Status           *Status
	CompletionMethod *event.CompletionMethod
	CompletedAt      *time.Time
}

func (p Patch) Empty() bool {
	return p.Status == nil && p.CompletionMethod == nil && p.CompletedAt == nil
}

// Repository exposes fight persistence used by the lifecycle core.
type Repository interface {
	Find(ctx context.Context, filter Filter) ([]Fight, error)
	Count(ctx context.Context, filter Filter) (int, error)
	// UpdateBulk applies patch to every fight matching filter and returns the number changed.
	UpdateBulk(ctx context.Context, filter Filter, patch Patch) (int, error)
	SetScheduledStartTime(ctx context.Context, id string, at *time.Time) (bool, error)
}
