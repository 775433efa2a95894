package usecase

import (
	"context"
	"fmt"
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

const defaultPollInterval = 60 * time.Second

// FightStartPoller promotes UPCOMING fights to LIVE once their admin-set start
// time passes. Only fights on explicitly time-based events are touched.
type FightStartPoller struct {
	eventRepo event.Repository
	fightRepo fight.Repository
	clock     clock.Clock
	interval  time.Duration
	emitter   *transitionEmitter
	logger    *logging.Logger

	sweeps resilience.SingleFlight[int]

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}
}

func NewFightStartPoller(
	eventRepo event.Repository,
	fightRepo fight.Repository,
	publisher transition.Publisher,
	clk clock.Clock,
	interval time.Duration,
	logger *logging.Logger,
) *FightStartPoller {
	if clk == nil {
		clk = clock.Real()
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.With("component", "fight_start_poller")

	return &FightStartPoller{
		eventRepo: eventRepo,
		fightRepo: fightRepo,
		clock:     clk,
		interval:  interval,
		emitter:   newTransitionEmitter(publisher, nil, logger),
		logger:    logger,
	}
}

// Sweep runs one promotion pass and returns the number of fights moved to
// LIVE. Concurrent callers share the pass already in flight.
func (p *FightStartPoller) Sweep(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FightStartPoller.Sweep")
	defer span.End()

	promoted, err, _ := p.sweeps.Do("sweep", func() (int, error) {
		return p.sweep(ctx)
	})
	return promoted, err
}

func (p *FightStartPoller) sweep(ctx context.Context) (int, error) {
	now := p.clock.Now().UTC()
	due, err := p.fightRepo.Find(ctx, fight.Filter{
		Statuses:        []fight.Status{fight.StatusUpcoming},
		ScheduledBefore: &now,
		TrackerMode:     event.TrackerTimeBased,
	})
	if err != nil {
		return 0, fmt.Errorf("find due fights: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	live := fight.StatusLive
	method := event.MethodTimeBased
	writeCtx := context.WithoutCancel(ctx)

	promoted := 0
	parents := make([]string, 0, len(due))
	seen := make(map[string]struct{}, len(due))
	for _, item := range due {
		count, err := p.fightRepo.UpdateBulk(writeCtx, fight.Filter{
			IDs:      []string{item.ID},
			Statuses: []fight.Status{fight.StatusUpcoming},
		}, fight.Patch{
			Status:           &live,
			CompletionMethod: &method,
		})
		if err != nil {
			p.logger.WarnContext(ctx, "promote fight failed", "fight_id", item.ID, "event_id", item.EventID, "error", err)
			continue
		}
		if count == 0 {
			continue
		}

		promoted++
		p.emitter.emit(ctx, transition.Transition{
			Kind:       transition.KindFight,
			EntityID:   item.ID,
			EventID:    item.EventID,
			From:       string(fight.StatusUpcoming),
			To:         string(fight.StatusLive),
			Method:     event.MethodTimeBased,
			Section:    item.CardType,
			OccurredAt: now,
		})

		if _, ok := seen[item.EventID]; !ok {
			seen[item.EventID] = struct{}{}
			parents = append(parents, item.EventID)
		}
	}

	eventsStarted := 0
	eventLive := event.StatusLive
	for _, eventID := range parents {
		started, err := p.eventRepo.Update(writeCtx, eventID, event.Patch{
			Status:       &eventLive,
			WhenStatusIn: []event.Status{event.StatusUpcoming},
		})
		if err != nil {
			p.logger.WarnContext(ctx, "promote event failed", "event_id", eventID, "error", err)
			continue
		}
		if !started {
			continue
		}
		eventsStarted++
		p.emitter.emit(ctx, transition.Transition{
			Kind:       transition.KindEvent,
			EntityID:   eventID,
			EventID:    eventID,
			From:       string(event.StatusUpcoming),
			To:         string(event.StatusLive),
			Method:     event.MethodTimeBased,
			OccurredAt: now,
		})
	}

	if promoted > 0 {
		p.logger.InfoContext(ctx, "fights promoted to live",
			"fights", promoted,
			"events_started", eventsStarted,
		)
	}
	return promoted, nil
}

// Start sweeps once immediately and then on every interval until Stop or ctx
// cancellation. Calling Start on a running poller is a no-op.
func (p *FightStartPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.done = make(chan struct{})

	ticker := p.clock.NewTicker(p.interval)
	go p.loop(ctx, ticker, p.stopCh, p.done)
}

// Stop halts the poller and waits for an in-flight sweep. It is safe to call
// on a poller that never started or already stopped.
func (p *FightStartPoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	done := p.done
	p.mu.Unlock()

	<-done
}

func (p *FightStartPoller) loop(ctx context.Context, ticker clock.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C():
			p.tick(ctx)
		}
	}
}

func (p *FightStartPoller) tick(ctx context.Context) {
	var catcher panics.Catcher
	catcher.Try(func() {
		if _, err := p.Sweep(ctx); err != nil {
			p.logger.ErrorContext(ctx, "fight start sweep failed", "error", err)
		}
	})
	if recovered := catcher.Recovered(); recovered != nil {
		p.logger.ErrorContext(ctx, "fight start sweep panicked", "panic", recovered.Value)
	}
}
