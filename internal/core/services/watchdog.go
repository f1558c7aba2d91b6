package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
)

// Watchdog drives a step-based chunked operation to completion under a
// liveness deadline. There is no mid-operation cancellation primitive:
// once started, an operation runs to completion unless the deadline
// fires, in which case the reset callback forcibly clears busy flags
// and the caller surfaces a timeout. No operation may leave the system
// in an unrecoverable busy state.
type Watchdog struct {
	budget  time.Duration
	limiter *rate.Limiter
}

// DefaultStepInterval paces chunked steps so other event-loop work can
// interleave between them.
const DefaultStepInterval = 10 * time.Millisecond

// NewWatchdog creates a watchdog with the given liveness budget and
// pacing interval. Non-positive arguments select defaults.
func NewWatchdog(budget, stepInterval time.Duration) *Watchdog {
	if budget <= 0 {
		budget = domain.DefaultEditorSettings().RenderTimeout
	}
	if stepInterval <= 0 {
		stepInterval = DefaultStepInterval
	}
	return &Watchdog{
		budget:  budget,
		limiter: rate.NewLimiter(rate.Every(stepInterval), 1),
	}
}

// Run calls step until it reports done, pacing iterations with the
// configured interval. On deadline expiry or context cancellation the
// reset callback runs and the operation is reported failed.
func (w *Watchdog) Run(ctx context.Context, step func() (bool, error), reset func()) error {
	deadline := time.Now().Add(w.budget)

	for {
		if time.Now().After(deadline) {
			logger.Warn("chunked operation exceeded %s budget, forcing reset", w.budget)
			if reset != nil {
				reset()
			}
			return domain.ErrTimeout
		}

		if err := w.limiter.Wait(ctx); err != nil {
			if reset != nil {
				reset()
			}
			return err
		}

		done, err := step()
		if err != nil {
			if reset != nil {
				reset()
			}
			return err
		}
		if done {
			return nil
		}
	}
}
