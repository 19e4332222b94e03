package mcd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/go-mcd/schema"
)

// ErrCircuitBreakerFailed is returned when a circuit breaker run ends in
// HAS_ERROR.
var ErrCircuitBreakerFailed = errors.New("circuit breaker run failed")

const (
	DefaultPollInterval = 15 * time.Second
	DefaultPollTimeout  = 5 * time.Minute
)

// PollOptions controls how a circuit breaker run is waited for. Zero
// values take the defaults.
type PollOptions struct {
	Interval time.Duration
	Timeout  time.Duration
}

func (o PollOptions) withDefaults() PollOptions {
	if o.Interval <= 0 {
		o.Interval = DefaultPollInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultPollTimeout
	}
	return o
}

// TriggerCircuitBreaker runs a circuit breaker rule, waits for the run to
// finish and reports whether the rule is in breach. A run still going
// after opts.Timeout yields context.DeadlineExceeded.
func (c *Client) TriggerCircuitBreaker(ctx context.Context, ruleUUID schema.UUID, opts PollOptions) (bool, error) {
	job, err := c.TriggerCircuitBreakerRule(ctx, ruleUUID)
	if err != nil {
		return false, err
	}
	c.logger.Debug("circuit breaker triggered",
		zap.Stringer("rule", ruleUUID),
		zap.Stringer("job", job),
	)

	state, err := c.WaitCircuitBreaker(ctx, job, opts)
	if err != nil {
		return false, err
	}
	breached, err := state.Breached()
	if err != nil {
		return false, fmt.Errorf("rule %s job %s: %w", ruleUUID, job, err)
	}
	return breached, nil
}

// WaitCircuitBreaker polls a circuit breaker run until PROCESSING_COMPLETE
// and returns its final state. HAS_ERROR yields ErrCircuitBreakerFailed.
func (c *Client) WaitCircuitBreaker(ctx context.Context, job schema.UUID, opts PollOptions) (*schema.CircuitBreakerState, error) {
	opts = opts.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		state, err := c.GetCircuitBreakerRuleState(ctx, job)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}
		c.logger.Debug("circuit breaker state",
			zap.Stringer("job", job),
			zap.Stringer("status", state.Status),
		)

		switch state.Status {
		case schema.CircuitBreakerStatusProcessingComplete:
			return state, nil
		case schema.CircuitBreakerStatusHasError:
			return state, fmt.Errorf("%w: job %s%s", ErrCircuitBreakerFailed, job, lastLogError(state))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// lastLogError returns ": <message>" for the last error in the run log,
// or "".
func lastLogError(state *schema.CircuitBreakerState) string {
	entries, err := state.LogEntries()
	if err != nil {
		return ""
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if msg := entries[i].Payload.Error; msg != "" {
			return ": " + msg
		}
	}
	return ""
}
