package ai

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Invoker is the single-attempt completion surface the cascade walks.
// *Client satisfies it.
type Invoker interface {
	Complete(ctx context.Context, cand Candidate, prompt string) (*Completion, error)
}

// Cascade tries candidates in order until one succeeds.
type Cascade struct {
	invoker Invoker
	logger  *zap.Logger
}

// Attempt records the outcome of one candidate call.
type Attempt struct {
	Model   string
	Elapsed time.Duration
	Err     error
}

func NewCascade(invoker Invoker, logger *zap.Logger) *Cascade {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cascade{invoker: invoker, logger: logger}
}

// Run walks the chain sequentially. The first success wins and later
// candidates are never called. When every candidate fails, the returned
// error is an *ExhaustedError wrapping the last failure.
func (c *Cascade) Run(ctx context.Context, candidates []Candidate, prompt string) (*Completion, []Attempt, error) {
	if len(candidates) == 0 {
		return nil, nil, &ConfigError{Reason: "no model candidates configured"}
	}

	attempts := make([]Attempt, 0, len(candidates))
	var lastErr error

	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, attempts, err
		}

		start := time.Now()
		comp, err := c.invoker.Complete(ctx, cand, prompt)
		if err == nil {
			attempts = append(attempts, Attempt{Model: cand.Model, Elapsed: comp.Elapsed})
			c.logger.Debug("model candidate succeeded",
				zap.String("model", cand.Model),
				zap.Duration("elapsed", comp.Elapsed),
				zap.Int("attempt", len(attempts)))
			return comp, attempts, nil
		}

		attempts = append(attempts, Attempt{Model: cand.Model, Elapsed: time.Since(start), Err: err})
		c.logger.Warn("model candidate failed",
			zap.String("model", cand.Model),
			zap.Error(err))
		lastErr = err
	}

	return nil, attempts, &ExhaustedError{Attempts: len(attempts), Last: lastErr}
}
