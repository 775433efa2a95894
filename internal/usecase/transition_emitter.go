package usecase

import (
	"context"

	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/riskibarqy/fightcard/internal/platform/id"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
)

// transitionEmitter stamps and publishes status changes. Delivery is best
// effort: a failed publish is logged and the store write stands.
type transitionEmitter struct {
	publisher transition.Publisher
	ids       id.Generator
	logger    *logging.Logger
}

func newTransitionEmitter(publisher transition.Publisher, ids id.Generator, logger *logging.Logger) *transitionEmitter {
	if publisher == nil {
		publisher = transition.NewNoopPublisher()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &transitionEmitter{
		publisher: publisher,
		ids:       ids,
		logger:    logger,
	}
}

func (e *transitionEmitter) emit(ctx context.Context, item transition.Transition) {
	if item.ID == "" {
		value, err := e.ids.NewID()
		if err != nil {
			e.logger.WarnContext(ctx, "generate transition id failed", "event_id", item.EventID, "error", err)
		}
		item.ID = value
	}
	if err := e.publisher.Publish(ctx, item); err != nil {
		e.logger.WarnContext(ctx, "publish transition failed",
			"kind", item.Kind,
			"entity_id", item.EntityID,
			"event_id", item.EventID,
			"to", item.To,
			"error", err,
		)
	}
}
