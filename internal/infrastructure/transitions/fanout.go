package transitions

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
)

// Fanout delivers every transition to all publishers and joins their errors.
type Fanout []transition.Publisher

func (f Fanout) Publish(ctx context.Context, item transition.Transition) error {
	var errs []error
	for _, publisher := range f {
		if err := publisher.Publish(ctx, item); err != nil {
			errs = append(errs, err)
		}
	}
	return crerr.Join(errs...)
}
