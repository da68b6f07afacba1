package usecase

import (
	"context"
	"time"
)

// DelayAuthorizer is the placeholder PaymentAuthorizer: it waits a fixed
// interval and approves. It stands in for a real gateway integration and
// respects context cancellation so an abandoned request does not hold the
// wizard.
type DelayAuthorizer struct {
	Delay time.Duration
}

// DefaultAuthorizeDelay mirrors the simulated processing time of the
// storefront's submit step.
const DefaultAuthorizeDelay = 1500 * time.Millisecond

func NewDelayAuthorizer() *DelayAuthorizer {
	return &DelayAuthorizer{Delay: DefaultAuthorizeDelay}
}

func (a *DelayAuthorizer) Authorize(ctx context.Context, userID string, amountCents int64) error {
	d := a.Delay
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
