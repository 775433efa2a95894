package event

import (
	"strings"
	"time"
)

type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusLive      Status = "LIVE"
	StatusCompleted Status = "COMPLETED"
)

// TrackerMode selects which subsystem drives an event's fight statuses.
type TrackerMode string

const (
	TrackerTimeBased  TrackerMode = "time-based"
	TrackerLiveScrape TrackerMode = "live-scrape"
)

// CompletionMethod records which subsystem last transitioned an event or
// fight. The time-based value doubles as the idempotency marker for the
// clock-driven lifecycle.
type CompletionMethod string

const (
	MethodTimeBased  CompletionMethod = "time-based"
	MethodLiveScrape CompletionMethod = "live-scrape"
	MethodManual     CompletionMethod = "manual"
)

// Event is one announced fight card.
type Event struct {
	ID                   string
	Name                 string
	Promotion            string
	Date                 time.Time
	EarlyPrelimStartTime *time.Time
	PrelimStartTime      *time.Time
	MainStartTime        *time.Time
	Status               Status
	CompletionMethod     CompletionMethod
	TrackerMode          TrackerMode
}

func NormalizeStatus(value string) Status {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	if status == "" {
		return StatusUpcoming
	}
	return status
}

func (s Status) rank() int {
	switch s {
	case StatusUpcoming:
		return 0
	case StatusLive:
		return 1
	case StatusCompleted:
		return 2
	default:
		return -1
	}
}

// CanAdvanceTo reports whether moving from s to next keeps the status monotonic.
func (s Status) CanAdvanceTo(next Status) bool {
	from, to := s.rank(), next.rank()
	if from < 0 || to < 0 {
		return false
	}
	return to > from
}

// AllowsTimeBased reports whether the clock-driven lifecycle may act on the
// event. An unset mode falls back to time-based tracking.
func (m TrackerMode) AllowsTimeBased() bool {
	mode := TrackerMode(strings.ToLower(strings.TrimSpace(string(m))))
	return mode == "" || mode == TrackerTimeBased
}

// HasSectionTimes reports whether any card section start time is set.
func (e Event) HasSectionTimes() bool {
	return e.EarlyPrelimStartTime != nil || e.PrelimStartTime != nil || e.MainStartTime != nil
}
