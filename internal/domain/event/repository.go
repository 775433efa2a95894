package event

import (
	"context"
	"slices"
)

// Filter selects events. Empty fields do not constrain the result.
type Filter struct {
	IDs             []string
	Statuses        []Status
	ExcludeStatuses []Status
	TrackerMode     TrackerMode
}

func (f Filter) Matches(item Event) bool {
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, item.ID) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, item.Status) {
		return false
	}
	if slices.Contains(f.ExcludeStatuses, item.Status) {
		return false
	}
	if f.TrackerMode != "" && item.TrackerMode != f.TrackerMode {
		return false
	}
	return true
}

// Patch is a partial update. WhenStatusIn makes the write conditional on the
// row's current status, which keeps status transitions monotonic without a
// read-modify-write round trip.
type Patch struct {
	Status           *Status
	CompletionMethod *CompletionMethod
	WhenStatusIn     []Status
}

func (p Patch) Empty() bool {
	return p.Status == nil && p.CompletionMethod == nil
}

// Repository exposes event persistence used by the lifecycle core.
type Repository interface {
	Find(ctx context.Context, filter Filter) ([]Event, error)
	GetByID(ctx context.Context, id string) (Event, bool, error)
	// Update applies patch to one event and reports whether a row changed.
	Update(ctx context.Context, id string, patch Patch) (bool, error)
}
