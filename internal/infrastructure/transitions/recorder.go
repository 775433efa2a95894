package transitions

import (
	"context"
	"sync"

	"github.com/riskibarqy/fightcard/internal/domain/transition"
)

// Recorder keeps published transitions in memory. It backs local runs
// without a broker and assertions in tests.
type Recorder struct {
	mu    sync.Mutex
	items []transition.Transition
	err   error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, item transition.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, item)
	return nil
}

// FailWith makes every later Publish return err. nil restores delivery.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Items() []transition.Transition {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]transition.Transition, len(r.items))
	copy(out, r.items)
	return out
}

// Filter returns recorded transitions of one kind for one event.
func (r *Recorder) Filter(kind transition.Kind, eventID string) []transition.Transition {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]transition.Transition, 0)
	for _, item := range r.items {
		if item.Kind == kind && item.EventID == eventID {
			out = append(out, item)
		}
	}
	return out
}
