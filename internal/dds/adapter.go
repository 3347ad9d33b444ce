package dds

import (
	"context"
	"fmt"
	"time"

	"github.com/hosgoru/vugraph-archive/internal/deal"
	"github.com/hosgoru/vugraph-archive/internal/logger"
)

// DefaultTimeout bounds a single solver call.
const DefaultTimeout = 30 * time.Second

// Backend produces a raw trick table for a valid deal.
type Backend interface {
	Solve(ctx context.Context, d deal.Deal) (Table, error)
}

// Adapter wraps a Backend with the table invariant checks and the
// retry-once policy. A backend that twice fails or twice returns an
// invalid table surfaces ErrSolverFailure.
type Adapter struct {
	backend Backend
	timeout time.Duration
}

// NewAdapter wraps the given backend. A zero timeout means DefaultTimeout.
func NewAdapter(backend Backend, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter{backend: backend, timeout: timeout}
}

// Solve returns a validated trick table for the deal.
func (a *Adapter) Solve(ctx context.Context, d deal.Deal) (Table, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		table, err := a.backend.Solve(callCtx, d)
		cancel()
		if err == nil {
			err = table.Validate()
			if err == nil {
				return table, nil
			}
		}
		lastErr = err
		if attempt == 0 {
			logger.Warn("solver attempt failed, retrying", logger.Fields{
				"board": d.Board,
				"error": err.Error(),
			})
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrSolverFailure, lastErr)
}
