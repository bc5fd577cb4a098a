package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/config"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// Scheduler is the bounded FIFO queue plus worker pool described in spec
// §4.6. It owns the process-wide job table and a buffered channel acting as
// the queue: the channel's capacity IS the bound, so Submit fails fast with
// QueueFull instead of blocking the caller (spec §5 "no caller is ever held
// indefinitely").
type Scheduler struct {
	cfg       *config.QueueConfig
	processor Processor

	table *table
	ch    chan string // job IDs, FIFO order

	// order lets Status recompute queue_position without draining ch: it
	// mirrors the channel's contents in submission order so workers can pop
	// their own ID off the front as they claim it.
	orderMu sync.Mutex
	order   []string

	workers  []*worker
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
}

// NewScheduler constructs a Scheduler. processor runs the synchronous
// generation path for each dequeued job.
func NewScheduler(cfg *config.QueueConfig, processor Processor) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		processor: processor,
		table:     newTable(),
		ch:        make(chan string, cfg.QueueCapacity),
		stopCh:    make(chan struct{}),
	}
}

// Start spawns the worker pool and the retention sweeper. Safe to call once;
// subsequent calls are no-ops.
func (s *Scheduler) Start(ctx context.Context) {
	if s.started {
		return
	}
	s.started = true

	slog.Info("starting job scheduler", "worker_count", s.cfg.WorkerCount, "queue_capacity", s.cfg.QueueCapacity)

	for i := 0; i < s.cfg.WorkerCount; i++ {
		w := newWorker(i, s)
		s.workers = append(s.workers, w)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			w.run(ctx)
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runSweeper(ctx)
	}()
}

// Stop signals workers and the sweeper to exit and waits for them.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

// Submit enqueues req, returning the opaque job identifier. Fails with
// ErrQueueFull if the bound is exceeded (spec §4.6 "submit").
func (s *Scheduler) Submit(req models.GenerateRequest) (string, error) {
	id := uuid.NewString()
	job := &Job{
		ID:        id,
		Status:    StatusQueued,
		Request:   req,
		CreatedAt: time.Now(),
	}
	s.table.insert(job)

	s.orderMu.Lock()
	s.order = append(s.order, id)
	s.orderMu.Unlock()

	select {
	case s.ch <- id:
		return id, nil
	default:
		s.removeFromOrder(id)
		s.table.delete(id)
		return "", apperrors.ErrQueueFull
	}
}

// Status returns a snapshot of the named job, recomputing queue_position if
// it is still queued (spec §4.6 "status").
func (s *Scheduler) Status(id string) (Snapshot, error) {
	var pos *int
	if p, ok := s.queuePositionOf(id); ok {
		pos = &p
	}
	return s.table.snapshot(id, pos)
}

// Cancel requests cancellation of the named job (spec §4.6 "cancel"). A
// job cancelled while still queued is immediately dropped from the FIFO
// order too, so it stops occupying a queue_position and stops shifting
// every other queued job's computed position.
func (s *Scheduler) Cancel(id string) error {
	wasQueued, err := s.table.requestCancel(id)
	if err != nil {
		return err
	}
	if wasQueued {
		s.removeFromOrder(id)
	}
	return nil
}

func (s *Scheduler) queuePositionOf(id string) (int, bool) {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	for i, v := range s.order {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Scheduler) removeFromOrder(id string) {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// runSweeper periodically evicts terminal jobs beyond the retention bounds.
func (s *Scheduler) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.table.sweepTerminal(s.cfg.RetentionMaxCount, s.cfg.RetentionMaxAge)
		}
	}
}
