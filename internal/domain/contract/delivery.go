package contract

import (
	"context"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

// Deliverer is the external delivery capability for one channel. Delivery is
// best-effort and fire-and-forget: the dispatcher does not retry, and a
// failure on one channel never blocks the others.
type Deliverer interface {
	Channel() domain.Channel
	Deliver(ctx context.Context, occurrence *entity.Occurrence) error
}
