package queue

import (
	"context"
	"log/slog"
	"time"
)

// worker is one of the scheduler's W worker goroutines. Each loop iteration
// dequeues exactly one job ID, claims it, and drives it to a terminal state
// (spec §4.6 "Workers").
type worker struct {
	id    int
	sched *Scheduler
}

func newWorker(id int, sched *Scheduler) *worker {
	return &worker{id: id, sched: sched}
}

func (w *worker) run(ctx context.Context) {
	log := slog.With("worker_id", w.id)
	log.Info("queue worker started")

	for {
		select {
		case <-w.sched.stopCh:
			log.Info("queue worker shutting down")
			return
		case <-ctx.Done():
			log.Info("queue worker shutting down: context cancelled")
			return
		case id := <-w.sched.ch:
			w.sched.removeFromOrder(id)
			w.process(ctx, id)
		}
	}
}

func (w *worker) process(ctx context.Context, id string) {
	e, ok := w.sched.table.get(id)
	if !ok {
		return
	}

	e.mu.Lock()
	// A queued job may already have been marked cancelled by Cancel before
	// a worker ever reached it (spec §4.6 "A queued job's final state
	// becomes cancelled"); nothing to execute.
	if e.job.Status.IsTerminal() {
		e.mu.Unlock()
		return
	}
	now := time.Now()
	e.job.Status = StatusProcessing
	e.job.StartedAt = &now
	req := e.job.Request
	jobCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	log := slog.With("job_id", id, "worker_id", w.id)
	log.Info("job claimed")

	result, err := w.sched.processor.Process(jobCtx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancel = nil

	finished := time.Now()
	e.job.FinishedAt = &finished

	switch {
	case e.job.CancelRequested:
		e.job.Status = StatusCancelled
	case err != nil:
		e.job.Status = StatusFailed
		e.job.Err = err
	default:
		e.job.Status = StatusCompleted
		e.job.Result = result
	}

	log.Info("job finished", "status", e.job.Status)
}
