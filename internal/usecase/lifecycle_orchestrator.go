package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/platform/clock"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/riskibarqy/fightcard/internal/platform/resilience"
	"github.com/sourcegraph/conc/panics"
)

type LifecycleConfig struct {
	SettleDelay    time.Duration
	SafetyInterval time.Duration
	Workers        int
}

type LifecycleCheckResult struct {
	EventsScanned   int `json:"events_scanned"`
	EventsStarted   int `json:"events_started"`
	FightsCompleted int `json:"fights_completed"`
	EventsCompleted int `json:"events_completed"`
	FailedEvents    int `json:"failed_events"`
}

type ScheduleAllResult struct {
	Events  int `json:"events"`
	Armed   int `json:"armed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// LifecycleOrchestrator owns the clock-driven lifecycle of every open event.
// It schedules all events after a settle delay, runs the fight start poller,
// and periodically re-runs catch-up and scheduling to heal lost timers.
type LifecycleOrchestrator struct {
	eventRepo event.Repository
	scheduler *SectionScheduler
	poller    *FightStartPoller
	clock     clock.Clock
	cfg       LifecycleConfig
	logger    *logging.Logger

	checks resilience.SingleFlight[LifecycleCheckResult]

	mu       sync.Mutex
	started  bool
	settle   clock.Timer
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

func NewLifecycleOrchestrator(
	eventRepo event.Repository,
	scheduler *SectionScheduler,
	poller *FightStartPoller,
	clk clock.Clock,
	cfg LifecycleConfig,
	logger *logging.Logger,
) *LifecycleOrchestrator {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 5 * time.Second
	}
	if cfg.SafetyInterval <= 0 {
		cfg.SafetyInterval = 15 * time.Minute
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return &LifecycleOrchestrator{
		eventRepo: eventRepo,
		scheduler: scheduler,
		poller:    poller,
		clock:     clk,
		cfg:       cfg,
		logger:    logger.With("component", "lifecycle_orchestrator"),
	}
}

// Start arms the startup scheduling pass, starts the poller and the safety
// sweep. A second Start before Stop is ignored.
func (o *LifecycleOrchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started {
		return
	}
	o.started = true

	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.inflight.Add(1)
	o.settle = o.clock.AfterFunc(o.cfg.SettleDelay, func() {
		defer o.inflight.Done()
		o.guard(runCtx, "startup scheduling", func() {
			o.ScheduleAll(runCtx)
		})
	})

	o.poller.Start(runCtx)

	ticker := o.clock.NewTicker(o.cfg.SafetyInterval)
	o.inflight.Add(1)
	go o.safetyLoop(runCtx, ticker)

	o.logger.InfoContext(ctx, "lifecycle orchestrator started",
		"settle_delay", o.cfg.SettleDelay,
		"safety_interval", o.cfg.SafetyInterval,
	)
}

// Stop cancels the safety sweep, every armed section timer and the poller.
// It is safe to call without a prior Start.
func (o *LifecycleOrchestrator) Stop() {
	o.mu.Lock()
	if o.started {
		o.started = false
		if o.settle != nil && o.settle.Stop() {
			o.inflight.Done()
		}
		o.settle = nil
		if o.cancel != nil {
			o.cancel()
			o.cancel = nil
		}
	}
	o.mu.Unlock()

	o.inflight.Wait()
	cancelled := o.scheduler.CancelAllTimers()
	o.poller.Stop()

	o.logger.Info("lifecycle orchestrator stopped", "timers_cancelled", cancelled)
}

// RunLifecycleCheckNow completes every overdue section of every open event
// and reports what changed. Only a failure to list events is returned as an
// error; per-event failures are counted.
func (o *LifecycleOrchestrator) RunLifecycleCheckNow(ctx context.Context) (LifecycleCheckResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleOrchestrator.RunLifecycleCheckNow")
	defer span.End()

	result, err, _ := o.checks.Do("lifecycle-check", func() (LifecycleCheckResult, error) {
		return o.runCheck(ctx)
	})
	return result, err
}

func (o *LifecycleOrchestrator) runCheck(ctx context.Context) (LifecycleCheckResult, error) {
	events, err := o.openEvents(ctx)
	if err != nil {
		return LifecycleCheckResult{}, err
	}

	result := LifecycleCheckResult{EventsScanned: len(events)}
	for _, item := range events {
		caught, err := o.scheduler.CatchUp(ctx, item.ID)
		if err != nil {
			result.FailedEvents++
			o.logger.WarnContext(ctx, "lifecycle check failed for event", "event_id", item.ID, "error", err)
			continue
		}
		if caught.EventStarted {
			result.EventsStarted++
		}
		result.FightsCompleted += caught.FightsCompleted
		if caught.EventCompleted {
			result.EventsCompleted++
		}
	}

	if result.EventsStarted > 0 || result.FightsCompleted > 0 || result.EventsCompleted > 0 || result.FailedEvents > 0 {
		o.logger.InfoContext(ctx, "lifecycle check finished",
			"events_scanned", result.EventsScanned,
			"events_started", result.EventsStarted,
			"fights_completed", result.FightsCompleted,
			"events_completed", result.EventsCompleted,
			"failed_events", result.FailedEvents,
		)
	}
	return result, nil
}

// ScheduleAll calls ScheduleEvent for every open event on the worker pool.
// One event failing never stops the others.
func (o *LifecycleOrchestrator) ScheduleAll(ctx context.Context) (ScheduleAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleOrchestrator.ScheduleAll")
	defer span.End()

	events, err := o.openEvents(ctx)
	if err != nil {
		o.logger.ErrorContext(ctx, "list open events failed", "error", err)
		return ScheduleAllResult{}, err
	}
	if len(events) == 0 {
		return ScheduleAllResult{}, nil
	}

	pool, err := ants.NewPool(o.cfg.Workers)
	if err != nil {
		return ScheduleAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var armed, skipped, failed atomic.Int32
	var workers sync.WaitGroup
	for _, item := range events {
		eventID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			result, err := o.scheduler.ScheduleEvent(ctx, eventID)
			if err != nil {
				failed.Add(1)
				o.logger.WarnContext(ctx, "schedule event failed", "event_id", eventID, "error", err)
				return
			}
			if result.Skipped != "" {
				skipped.Add(1)
			}
			armed.Add(int32(len(result.Armed)))
		}); err != nil {
			workers.Done()
			failed.Add(1)
			o.logger.WarnContext(ctx, "submit schedule task failed", "event_id", eventID, "error", err)
		}
	}
	workers.Wait()

	result := ScheduleAllResult{
		Events:  len(events),
		Armed:   int(armed.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}
	o.logger.InfoContext(ctx, "open events scheduled",
		"events", result.Events,
		"timers_armed", result.Armed,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// ArmedTimers exposes the scheduler's pending timers for admin tooling.
func (o *LifecycleOrchestrator) ArmedTimers() []ArmedTimer {
	return o.scheduler.ArmedTimers()
}

func (o *LifecycleOrchestrator) openEvents(ctx context.Context) ([]event.Event, error) {
	events, err := o.eventRepo.Find(ctx, event.Filter{
		ExcludeStatuses: []event.Status{event.StatusCompleted},
	})
	if err != nil {
		return nil, fmt.Errorf("find open events: %w", err)
	}
	return events, nil
}

func (o *LifecycleOrchestrator) safetyLoop(ctx context.Context, ticker clock.Ticker) {
	defer o.inflight.Done()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			o.guard(ctx, "safety sweep", func() {
				if _, err := o.RunLifecycleCheckNow(ctx); err != nil {
					o.logger.ErrorContext(ctx, "safety sweep check failed", "error", err)
				}
				o.ScheduleAll(ctx)
			})
		}
	}
}

func (o *LifecycleOrchestrator) guard(ctx context.Context, name string, fn func()) {
	var catcher panics.Catcher
	catcher.Try(fn)
	if recovered := catcher.Recovered(); recovered != nil {
		o.logger.ErrorContext(ctx, "lifecycle task panicked", "task", name, "panic", recovered.Value)
	}
}
