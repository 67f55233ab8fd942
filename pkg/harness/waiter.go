package harness

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thesyncim/colorcheck/pkg/harness/internal"
)

// DefaultPollInterval is how often the Waiter re-reads the target.
const DefaultPollInterval = 100 * time.Millisecond

// Waiter polls the page until a text condition holds.
type Waiter struct {
	resolver     *Resolver
	clock        internal.Clock
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewWaiter creates a Waiter that re-reads its target every pollInterval.
// A non-positive interval selects DefaultPollInterval. A nil clock uses the
// system clock.
func NewWaiter(resolver *Resolver, clock internal.Clock, pollInterval time.Duration, logger *zap.Logger) *Waiter {
	if clock == nil {
		clock = internal.MonotonicClock{}
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Waiter{
		resolver:     resolver,
		clock:        clock,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// WaitForText re-resolves target and re-reads its text until it contains
// expected, or timeout elapses. The element is looked up afresh on every
// poll because the page may replace it while rendering.
//
// The total wait never exceeds timeout. Expiry yields a *TimeoutError;
// cancellation of ctx yields the context's error.
func (w *Waiter) WaitForText(ctx context.Context, page Page, target Candidates, expected string, timeout time.Duration) error {
	if timeout <= 0 {
		return errors.New("wait timeout must be positive")
	}

	interval := w.pollInterval
	if interval >= timeout {
		interval = timeout / 10
	}

	deadline := w.clock.Now().Add(timeout)
	var last string
	polls := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		polls++
		if el, err := w.resolver.Resolve(page, target); err == nil {
			if text, err := el.Text(); err == nil {
				last = text
				if strings.Contains(text, expected) {
					w.logger.Debug("Text condition met.",
						zap.Stringer("target", target),
						zap.String("expected", expected),
						zap.Int("polls", polls))
					return nil
				}
			}
		}

		remaining := deadline.Sub(w.clock.Now())
		if remaining <= 0 {
			return &TimeoutError{
				Target:   target,
				Expected: expected,
				Timeout:  timeout,
				LastText: last,
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.clock.After(min(interval, remaining)):
		}
	}
}
