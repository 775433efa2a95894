package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/riskibarqy/fightcard/internal/platform/clock"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/riskibarqy/fightcard/internal/platform/resilience"
	"github.com/sourcegraph/conc/panics"
)

const (
	SkipEventCompleted   = "event-completed"
	SkipNotTimeBased     = "not-time-based"
	SkipAlreadyProcessed = "already-processed"
	SkipNoScheduleTime   = "no-schedule-time"
)

type ArmedTimer struct {
	EventID string         `json:"event_id"`
	Section fight.CardType `json:"section"`
	FireAt  time.Time      `json:"fire_at"`
}

type ScheduleResult struct {
	EventID   string          `json:"event_id"`
	Skipped   string          `json:"skipped,omitempty"`
	Armed     []ArmedTimer    `json:"armed"`
	Completed []SectionResult `json:"completed"`
}

type SectionResult struct {
	EventID         string         `json:"event_id"`
	Section         fight.CardType `json:"section"`
	Skipped         string         `json:"skipped,omitempty"`
	FightsCompleted int            `json:"fights_completed"`
	EventStarted    bool           `json:"event_started"`
	EventCompleted  bool           `json:"event_completed"`
}

type CatchUpResult struct {
	EventID         string `json:"event_id"`
	Skipped         string `json:"skipped,omitempty"`
	EventStarted    bool   `json:"event_started"`
	FightsCompleted int    `json:"fights_completed"`
	EventCompleted  bool   `json:"event_completed"`
}

type sectionTrigger struct {
	section fight.CardType
	at      time.Time
}

type armedEntry struct {
	eventID string
	section fight.CardType
	fireAt  time.Time
	timer   clock.Timer
}

// SectionScheduler arms one timer per card section of an event and completes
// the section's fights when it fires. Work on a single event is serialized.
type SectionScheduler struct {
	eventRepo event.Repository
	fightRepo fight.Repository
	clock     clock.Clock
	emitter   *transitionEmitter
	logger    *logging.Logger

	locks resilience.KeyedMutex

	mu     sync.Mutex
	timers map[string][]*armedEntry
}

func NewSectionScheduler(
	eventRepo event.Repository,
	fightRepo fight.Repository,
	publisher transition.Publisher,
	clk clock.Clock,
	logger *logging.Logger,
) *SectionScheduler {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.With("component", "section_scheduler")

	return &SectionScheduler{
		eventRepo: eventRepo,
		fightRepo: fightRepo,
		clock:     clk,
		emitter:   newTransitionEmitter(publisher, nil, logger),
		logger:    logger,
		timers:    make(map[string][]*armedEntry),
	}
}

// ScheduleEvent completes every section whose start time has passed and arms
// timers for the rest. Events that already carry clock-driven completions are
// left alone so restarts and repeated sweeps do not redo work.
func (s *SectionScheduler) ScheduleEvent(ctx context.Context, eventID string) (ScheduleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SectionScheduler.ScheduleEvent")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return ScheduleResult{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(eventID)
	defer unlock()

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return ScheduleResult{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	result := ScheduleResult{
		EventID:   eventID,
		Armed:     []ArmedTimer{},
		Completed: []SectionResult{},
	}
	if item.Status == event.StatusCompleted {
		s.CancelTimers(eventID)
		result.Skipped = SkipEventCompleted
		return result, nil
	}
	if !item.TrackerMode.AllowsTimeBased() {
		s.CancelTimers(eventID)
		result.Skipped = SkipNotTimeBased
		return result, nil
	}

	processed, err := s.fightRepo.Count(ctx, fight.Filter{
		EventID:          eventID,
		Statuses:         []fight.Status{fight.StatusCompleted},
		CompletionMethod: event.MethodTimeBased,
	})
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("count time-based fights: %w", err)
	}
	if processed > 0 {
		result.Skipped = SkipAlreadyProcessed
		return result, nil
	}

	triggers := sectionTriggers(item)
	if len(triggers) == 0 {
		s.logger.WarnContext(ctx, "event has no section times and no date", "event_id", eventID)
		result.Skipped = SkipNoScheduleTime
		return result, nil
	}
	if outOfCardOrder(triggers) {
		s.logger.WarnContext(ctx, "section times out of card order", "event_id", eventID)
	}

	s.CancelTimers(eventID)

	slices.SortStableFunc(triggers, func(a, b sectionTrigger) int {
		return a.at.Compare(b.at)
	})

	// Store writes started here must finish even if the caller goes away.
	workCtx := context.WithoutCancel(ctx)
	now := s.clock.Now()
	for _, trigger := range triggers {
		if trigger.at.After(now) {
			result.Armed = append(result.Armed, s.arm(eventID, trigger, trigger.at.Sub(now)))
			continue
		}

		section, err := s.completeSectionLocked(workCtx, eventID, trigger.section)
		if err != nil {
			return result, fmt.Errorf("complete section %s: %w", trigger.section.Slug(), err)
		}
		result.Completed = append(result.Completed, section)
		if section.EventCompleted {
			break
		}
	}

	if len(result.Armed) > 0 {
		s.logger.InfoContext(ctx, "section timers armed",
			"event_id", eventID,
			"timers", len(result.Armed),
			"next_fire_at", result.Armed[0].FireAt,
		)
	}
	return result, nil
}

// CompleteSection marks the event live and completes every open fight in
// section. fight.CardAll covers the whole card.
func (s *SectionScheduler) CompleteSection(ctx context.Context, eventID string, section fight.CardType) (SectionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SectionScheduler.CompleteSection")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return SectionResult{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(string(section)) == "" {
		section = fight.CardAll
	}

	unlock := s.locks.Lock(eventID)
	defer unlock()

	return s.completeSectionLocked(context.WithoutCancel(ctx), eventID, section)
}

// CatchUp completes the sections of an event whose start time has passed and
// that have no clock-driven completions yet, then re-checks event completion.
func (s *SectionScheduler) CatchUp(ctx context.Context, eventID string) (CatchUpResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SectionScheduler.CatchUp")
	defer span.End()

	unlock := s.locks.Lock(eventID)
	defer unlock()

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return CatchUpResult{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return CatchUpResult{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	result := CatchUpResult{EventID: eventID}
	switch {
	case item.Status == event.StatusCompleted:
		result.Skipped = SkipEventCompleted
		return result, nil
	case !item.TrackerMode.AllowsTimeBased():
		result.Skipped = SkipNotTimeBased
		return result, nil
	}

	triggers := sectionTriggers(item)
	if len(triggers) == 0 {
		result.Skipped = SkipNoScheduleTime
		return result, nil
	}
	slices.SortStableFunc(triggers, func(a, b sectionTrigger) int {
		return a.at.Compare(b.at)
	})

	workCtx := context.WithoutCancel(ctx)
	now := s.clock.Now()
	status := item.Status
	due := false
	for _, trigger := range triggers {
		if trigger.at.After(now) {
			continue
		}
		due = true

		processed, err := s.fightRepo.Count(ctx, fight.Filter{
			EventID:          eventID,
			Section:          trigger.section,
			Statuses:         []fight.Status{fight.StatusCompleted},
			CompletionMethod: event.MethodTimeBased,
		})
		if err != nil {
			return result, fmt.Errorf("count time-based fights in %s: %w", trigger.section.Slug(), err)
		}
		if processed > 0 {
			continue
		}

		section, err := s.completeSectionLocked(workCtx, eventID, trigger.section)
		if err != nil {
			return result, fmt.Errorf("complete section %s: %w", trigger.section.Slug(), err)
		}
		if section.EventStarted {
			result.EventStarted = true
			status = event.StatusLive
		}
		result.FightsCompleted += section.FightsCompleted
		if section.EventCompleted {
			result.EventCompleted = true
			return result, nil
		}
	}

	if due {
		done, err := s.completeEventIfDone(workCtx, eventID, status)
		if err != nil {
			return result, err
		}
		result.EventCompleted = done
	}
	return result, nil
}

// CancelTimers stops and forgets every armed timer of one event.
func (s *SectionScheduler) CancelTimers(eventID string) int {
	s.mu.Lock()
	entries := s.timers[eventID]
	delete(s.timers, eventID)
	s.mu.Unlock()

	for _, entry := range entries {
		entry.timer.Stop()
	}
	return len(entries)
}

// CancelAllTimers stops every armed timer. Callbacks already running finish.
func (s *SectionScheduler) CancelAllTimers() int {
	s.mu.Lock()
	all := s.timers
	s.timers = make(map[string][]*armedEntry)
	s.mu.Unlock()

	cancelled := 0
	for _, entries := range all {
		for _, entry := range entries {
			entry.timer.Stop()
			cancelled++
		}
	}
	return cancelled
}

// ArmedTimers returns a snapshot of pending timers ordered by fire time.
func (s *SectionScheduler) ArmedTimers() []ArmedTimer {
	s.mu.Lock()
	out := make([]ArmedTimer, 0, len(s.timers))
	for _, entries := range s.timers {
		for _, entry := range entries {
			out = append(out, ArmedTimer{EventID: entry.eventID, Section: entry.section, FireAt: entry.fireAt})
		}
	}
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b ArmedTimer) int {
		if c := a.FireAt.Compare(b.FireAt); c != 0 {
			return c
		}
		return strings.Compare(a.EventID, b.EventID)
	})
	return out
}

func (s *SectionScheduler) arm(eventID string, trigger sectionTrigger, delay time.Duration) ArmedTimer {
	entry := &armedEntry{
		eventID: eventID,
		section: trigger.section,
		fireAt:  trigger.at,
	}

	s.mu.Lock()
	entry.timer = s.clock.AfterFunc(delay, func() { s.fire(entry) })
	s.timers[eventID] = append(s.timers[eventID], entry)
	s.mu.Unlock()

	return ArmedTimer{EventID: eventID, Section: trigger.section, FireAt: trigger.at}
}

func (s *SectionScheduler) fire(entry *armedEntry) {
	ctx := context.Background()

	var catcher panics.Catcher
	catcher.Try(func() {
		unlock := s.locks.Lock(entry.eventID)
		defer unlock()

		// A timer cancelled while waiting on the event lock must not run.
		if !s.release(entry) {
			return
		}

		result, err := s.completeSectionLocked(ctx, entry.eventID, entry.section)
		if err != nil {
			s.logger.ErrorContext(ctx, "section timer failed",
				"event_id", entry.eventID,
				"section", entry.section,
				"error", err,
			)
			return
		}
		s.logger.InfoContext(ctx, "section timer fired",
			"event_id", entry.eventID,
			"section", entry.section,
			"skipped", result.Skipped,
			"fights_completed", result.FightsCompleted,
			"event_completed", result.EventCompleted,
		)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		s.logger.ErrorContext(ctx, "section timer panicked",
			"event_id", entry.eventID,
			"section", entry.section,
			"panic", recovered.Value,
		)
	}
}

func (s *SectionScheduler) release(target *armedEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.timers[target.eventID]
	idx := slices.Index(entries, target)
	if idx < 0 {
		return false
	}
	entries = slices.Delete(entries, idx, idx+1)
	if len(entries) == 0 {
		delete(s.timers, target.eventID)
	} else {
		s.timers[target.eventID] = entries
	}
	return true
}

// completeSectionLocked expects the caller to hold the event lock.
func (s *SectionScheduler) completeSectionLocked(ctx context.Context, eventID string, section fight.CardType) (SectionResult, error) {
	result := SectionResult{EventID: eventID, Section: section}

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return result, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return result, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	if item.Status == event.StatusCompleted {
		s.CancelTimers(eventID)
		result.Skipped = SkipEventCompleted
		return result, nil
	}
	if !item.TrackerMode.AllowsTimeBased() {
		s.logger.InfoContext(ctx, "event no longer time-based, section left untouched",
			"event_id", eventID,
			"tracker_mode", item.TrackerMode,
			"section", section,
		)
		result.Skipped = SkipNotTimeBased
		return result, nil
	}

	now := s.clock.Now().UTC()
	status := item.Status
	if status == event.StatusUpcoming {
		live := event.StatusLive
		started, err := s.eventRepo.Update(ctx, eventID, event.Patch{
			Status:       &live,
			WhenStatusIn: []event.Status{event.StatusUpcoming},
		})
		if err != nil {
			return result, fmt.Errorf("mark event live: %w", err)
		}
		if started {
			result.EventStarted = true
			status = event.StatusLive
			s.emitter.emit(ctx, transition.Transition{
				Kind:       transition.KindEvent,
				EntityID:   eventID,
				EventID:    eventID,
				From:       string(event.StatusUpcoming),
				To:         string(event.StatusLive),
				Method:     event.MethodTimeBased,
				Section:    section,
				OccurredAt: now,
			})
		}
	}

	completed := fight.StatusCompleted
	method := event.MethodTimeBased
	count, err := s.fightRepo.UpdateBulk(ctx, fight.Filter{
		EventID:  eventID,
		Statuses: []fight.Status{fight.StatusUpcoming, fight.StatusLive},
		Section:  section,
	}, fight.Patch{
		Status:           &completed,
		CompletionMethod: &method,
		CompletedAt:      &now,
	})
	if err != nil {
		return result, fmt.Errorf("complete section fights: %w", err)
	}
	result.FightsCompleted = count

	if count == 0 {
		s.logger.InfoContext(ctx, "section matched no open fights", "event_id", eventID, "section", section)
	} else {
		s.emitter.emit(ctx, transition.Transition{
			Kind:       transition.KindSection,
			EntityID:   eventID + "/" + section.Slug(),
			EventID:    eventID,
			To:         string(fight.StatusCompleted),
			Method:     event.MethodTimeBased,
			Section:    section,
			Count:      count,
			OccurredAt: now,
		})
	}

	done, err := s.completeEventIfDone(ctx, eventID, status)
	if err != nil {
		return result, err
	}
	result.EventCompleted = done
	return result, nil
}

func (s *SectionScheduler) completeEventIfDone(ctx context.Context, eventID string, from event.Status) (bool, error) {
	open, err := s.fightRepo.Count(ctx, fight.Filter{
		EventID:  eventID,
		Statuses: []fight.Status{fight.StatusUpcoming, fight.StatusLive},
	})
	if err != nil {
		return false, fmt.Errorf("count open fights: %w", err)
	}
	if open > 0 {
		return false, nil
	}

	completed := event.StatusCompleted
	method := event.MethodTimeBased
	updated, err := s.eventRepo.Update(ctx, eventID, event.Patch{
		Status:           &completed,
		CompletionMethod: &method,
		WhenStatusIn:     []event.Status{event.StatusUpcoming, event.StatusLive},
	})
	if err != nil {
		return false, fmt.Errorf("mark event completed: %w", err)
	}
	s.CancelTimers(eventID)
	if !updated {
		return false, nil
	}

	s.emitter.emit(ctx, transition.Transition{
		Kind:       transition.KindEvent,
		EntityID:   eventID,
		EventID:    eventID,
		From:       string(from),
		To:         string(event.StatusCompleted),
		Method:     event.MethodTimeBased,
		OccurredAt: s.clock.Now().UTC(),
	})
	s.logger.InfoContext(ctx, "event completed by clock", "event_id", eventID)
	return true, nil
}

// sectionTriggers lists the card sections with a start time in card order,
// falling back to one whole-card trigger at the event date.
func sectionTriggers(item event.Event) []sectionTrigger {
	out := make([]sectionTrigger, 0, 3)
	if item.EarlyPrelimStartTime != nil {
		out = append(out, sectionTrigger{section: fight.CardEarlyPrelims, at: *item.EarlyPrelimStartTime})
	}
	if item.PrelimStartTime != nil {
		out = append(out, sectionTrigger{section: fight.CardPrelims, at: *item.PrelimStartTime})
	}
	if item.MainStartTime != nil {
		out = append(out, sectionTrigger{section: fight.CardMain, at: *item.MainStartTime})
	}
	if len(out) > 0 {
		return out
	}
	if item.Date.IsZero() {
		return nil
	}
	return []sectionTrigger{{section: fight.CardAll, at: item.Date}}
}

func outOfCardOrder(triggers []sectionTrigger) bool {
	for i := 1; i < len(triggers); i++ {
		if triggers[i].at.Before(triggers[i-1].at) {
			return true
		}
	}
	return false
}
