package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Workers is a bounded pool for slow repository calls that must stay off the
// UI thread. It is shared by all sessions of a process.
type Workers struct {
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	logger *slog.Logger
}

func NewWorkers(size int, logger *slog.Logger) *Workers {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Workers{
		sem:    semaphore.NewWeighted(int64(size)),
		logger: logger,
	}
}

// Submit queues task for a pool goroutine and returns immediately; the task
// starts once a slot is free. It fails only if ctx is already done. A task
// whose ctx ends while waiting for a slot is dropped.
// Results must be handed back to the UI with UI.Access.
func (w *Workers) Submit(ctx context.Context, task func(ctx context.Context)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("submit task: %w", err)
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.sem.Acquire(ctx, 1); err != nil {
			w.logger.Warn("background task dropped", "error", err)
			return
		}
		defer w.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				w.logger.Error("background task panicked", "panic", r)
			}
		}()
		task(ctx)
	}()
	return nil
}

// Wait blocks until every submitted task has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
