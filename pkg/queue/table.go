package queue

import (
	"context"
	"sync"
	"time"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
)

// table is the process-wide job_id → Job map (spec §3, §5). Mutation is
// exclusive per-entry: callers take mu for the whole table only for the
// map operation itself (insert/delete/iterate), never while holding a
// job's own lock across I/O.
type table struct {
	mu   sync.RWMutex
	jobs map[string]*entry
}

// entry pairs a Job with the lock guarding its mutable fields, so two
// goroutines (a worker processing it, an HTTP handler cancelling it) never
// race on Status/CancelRequested/Result.
type entry struct {
	mu     sync.Mutex
	job    *Job
	cancel context.CancelFunc // set while the job is being processed
}

func newTable() *table {
	return &table{jobs: make(map[string]*entry)}
}

func (t *table) insert(j *Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[j.ID] = &entry{job: j}
}

func (t *table) get(id string) (*entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.jobs[id]
	return e, ok
}

func (t *table) delete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, id)
}

// snapshot returns a point-in-time copy of a job, along with its queue
// position if still queued. queuePosition is supplied by the caller (the
// scheduler, which owns the channel and so alone knows FIFO order).
func (t *table) snapshot(id string, queuePosition *int) (Snapshot, error) {
	e, ok := t.get(id)
	if !ok {
		return Snapshot{}, apperrors.ErrJobNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.job, queuePosition), nil
}

// requestCancel sets the job's cancel flag and, if a worker is already
// processing it, cancels its context so the processor observes cancellation
// at its next safe point (spec §5). Returns ErrNotCancellable if the job
// already reached a terminal state. wasQueued reports whether the job was
// still queued (as opposed to already being processed), so the caller
// — which alone owns the FIFO order slice — knows to remove it from
// there too: a cancelled job is no longer "still queued" and must stop
// contributing a queue_position (spec §4.6 "queue_position is recomputed
// on read if still queued").
func (t *table) requestCancel(id string) (wasQueued bool, err error) {
	e, ok := t.get(id)
	if !ok {
		return false, apperrors.ErrJobNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.job.Status.IsTerminal() {
		return false, apperrors.ErrNotCancellable
	}
	e.job.CancelRequested = true
	if e.job.Status == StatusQueued {
		// A still-queued job can be finalized as cancelled immediately; the
		// worker will discard it without dequeueing work for it.
		e.job.Status = StatusCancelled
		now := time.Now()
		e.job.FinishedAt = &now
		return true, nil
	}
	if e.cancel != nil {
		e.cancel()
	}
	return false, nil
}

// sweepTerminal removes terminal jobs beyond the retention bounds: keeps at
// least maxCount of the most recent terminal jobs, and any terminal job
// younger than maxAge, whichever set is larger (spec §4.6 "Retention").
func (t *table) sweepTerminal(maxCount int, maxAge time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var terminal []retentionCandidate
	cutoff := time.Now().Add(-maxAge)

	for id, e := range t.jobs {
		e.mu.Lock()
		isTerminal := e.job.Status.IsTerminal()
		var finished time.Time
		if e.job.FinishedAt != nil {
			finished = *e.job.FinishedAt
		}
		e.mu.Unlock()
		if isTerminal {
			terminal = append(terminal, retentionCandidate{id: id, finished: finished})
		}
	}

	if len(terminal) <= maxCount {
		return
	}

	// Oldest-finished first, so the newest maxCount survive unconditionally.
	sortByFinishedAsc(terminal)

	evictable := len(terminal) - maxCount
	for i := 0; i < evictable; i++ {
		c := terminal[i]
		if c.finished.After(cutoff) {
			// Within the age window: retained even though count-eligible for eviction.
			continue
		}
		delete(t.jobs, c.id)
	}
}

// retentionCandidate is a terminal job considered for eviction during a sweep.
type retentionCandidate struct {
	id       string
	finished time.Time
}

func sortByFinishedAsc(c []retentionCandidate) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].finished.Before(c[j-1].finished); j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}
