package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	transitionmock "github.com/riskibarqy/fightcard/internal/mocks/domain/transition"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type fixedIDs struct {
	id  string
	err error
}

func (g fixedIDs) NewID() (string, error) {
	return g.id, g.err
}

func TestTransitionEmitter_StampsIDAndSwallowsPublishError(t *testing.T) {
	t.Parallel()

	publisher := transitionmock.NewPublisher(t)
	publisher.
		On("Publish", mock.Anything, mock.MatchedBy(func(item transition.Transition) bool {
			return item.ID == "tr-fixed" && item.Kind == transition.KindEvent && item.To == string(event.StatusLive)
		})).
		Return(errors.New("broker unavailable")).
		Once()

	emitter := newTransitionEmitter(publisher, fixedIDs{id: "tr-fixed"}, logging.NewNop())
	emitter.emit(context.Background(), transition.Transition{
		Kind:     transition.KindEvent,
		EntityID: "ev-1",
		EventID:  "ev-1",
		To:       string(event.StatusLive),
	})
}

func TestTransitionEmitter_KeepsExistingID(t *testing.T) {
	t.Parallel()

	publisher := transitionmock.NewPublisher(t)
	publisher.
		On("Publish", mock.Anything, mock.MatchedBy(func(item transition.Transition) bool {
			return item.ID == "tr-given"
		})).
		Return(nil).
		Once()

	emitter := newTransitionEmitter(publisher, fixedIDs{err: errors.New("entropy exhausted")}, logging.NewNop())
	emitter.emit(context.Background(), transition.Transition{ID: "tr-given", Kind: transition.KindFight, EventID: "ev-1"})
}
