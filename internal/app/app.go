package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fightcard/internal/config"
	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/riskibarqy/fightcard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fightcard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fightcard/internal/infrastructure/transitions"
	"github.com/riskibarqy/fightcard/internal/interfaces/httpapi"
	"github.com/riskibarqy/fightcard/internal/platform/clock"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/riskibarqy/fightcard/internal/platform/resilience"
	"github.com/riskibarqy/fightcard/internal/usecase"
)

// Runtime holds the lifecycle services built from one configuration. Both
// the API server and the operator CLI run on top of it.
type Runtime struct {
	EventService *usecase.EventService
	Scheduler    *usecase.SectionScheduler
	Poller       *usecase.FightStartPoller
	Orchestrator *usecase.LifecycleOrchestrator

	closers []func() error
}

func NewRuntime(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rt := &Runtime{}
	eventRepo, fightRepo, err := rt.buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	publisher, err := rt.buildPublisher(cfg, logger)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	clk := clock.Real()
	rt.EventService = usecase.NewEventService(eventRepo, fightRepo)
	rt.Scheduler = usecase.NewSectionScheduler(eventRepo, fightRepo, publisher, clk, logger)
	rt.Poller = usecase.NewFightStartPoller(eventRepo, fightRepo, publisher, clk, cfg.LifecyclePollInterval, logger)
	rt.Orchestrator = usecase.NewLifecycleOrchestrator(eventRepo, rt.Scheduler, rt.Poller, clk, usecase.LifecycleConfig{
		SettleDelay:    cfg.LifecycleSettleDelay,
		SafetyInterval: cfg.LifecycleSafetyInterval,
		Workers:        cfg.LifecycleWorkers,
	}, logger)

	logger.InfoContext(ctx, "lifecycle runtime ready",
		"store", cfg.StoreDriver,
		"transitions_kafka", cfg.TransitionsKafkaEnabled,
		"transitions_webhook", cfg.TransitionsWebhookURL != "",
		"poll_interval", cfg.LifecyclePollInterval,
	)
	return rt, nil
}

func (rt *Runtime) buildStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (event.Repository, fight.Repository, error) {
	if cfg.StoreDriver == config.StoreMemory {
		events := memory.NewEventRepository(memory.SeedEvents(time.Now().UTC()))
		return events, memory.NewFightRepository(memory.SeedFights(), events), nil
	}

	db, err := openDB(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	rt.closers = append(rt.closers, db.Close)
	return postgres.NewEventRepository(db), postgres.NewFightRepository(db), nil
}

func (rt *Runtime) buildPublisher(cfg config.Config, logger *logging.Logger) (transition.Publisher, error) {
	var publishers transitions.Fanout

	if cfg.TransitionsKafkaEnabled {
		kafkaPublisher, err := transitions.NewKafkaPublisher(transitions.KafkaConfig{
			Brokers:      cfg.TransitionsKafkaBrokers,
			Topic:        cfg.TransitionsKafkaTopic,
			WriteTimeout: cfg.TransitionsKafkaWriteTimeout,
			Breaker:      resilience.DefaultCircuitBreakerConfig(),
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("build kafka transition publisher: %w", err)
		}
		rt.closers = append(rt.closers, kafkaPublisher.Close)
		publishers = append(publishers, kafkaPublisher)
	}

	if cfg.TransitionsWebhookURL != "" {
		webhookPublisher, err := transitions.NewWebhookPublisher(transitions.WebhookConfig{
			URL:     cfg.TransitionsWebhookURL,
			Token:   cfg.TransitionsWebhookToken,
			Timeout: cfg.TransitionsWebhookTimeout,
			Breaker: resilience.DefaultCircuitBreakerConfig(),
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("build webhook transition publisher: %w", err)
		}
		publishers = append(publishers, webhookPublisher)
	}

	switch len(publishers) {
	case 0:
		return transition.NewNoopPublisher(), nil
	case 1:
		return publishers[0], nil
	default:
		return publishers, nil
	}
}

// Close releases the store and publisher in reverse build order.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func NewHTTPServer(cfg config.Config, rt *Runtime, logger *logging.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(rt.EventService, rt.Scheduler, rt.Poller, rt.Orchestrator, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
