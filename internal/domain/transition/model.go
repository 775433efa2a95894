package transition

import (
	"context"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
)

type Kind string

const (
	KindEvent   Kind = "event"
	KindFight   Kind = "fight"
	KindSection Kind = "section"
)

// Transition is a status change made by the lifecycle core. Section
// transitions describe a bulk completion and carry the number of fights moved.
type Transition struct {
	ID         string                 `json:"id"`
	Kind       Kind                   `json:"kind"`
	EntityID   string                 `json:"entity_id"`
	EventID    string                 `json:"event_id"`
	From       string                 `json:"from,omitempty"`
	To         string                 `json:"to"`
	Method     event.CompletionMethod `json:"method"`
	Section    fight.CardType         `json:"section,omitempty"`
	Count      int                    `json:"count,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Publisher delivers transitions to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, item Transition) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Transition) error {
	return nil
}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}
