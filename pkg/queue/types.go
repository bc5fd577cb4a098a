// Package queue implements the bounded FIFO job scheduler (spec §4.6): an
// in-process channel-backed queue plus a worker pool that drives the
// synchronous generation path (Normalizer → Compiler → LLM → Pipeline →
// Audit) for asynchronously submitted requests.
package queue

import (
	"context"
	"time"

	"github.com/codeready-toolchain/codegend/pkg/models"
)

// Status is the closed set of lifecycle states a Job passes through.
type Status string

// Job lifecycle states, per spec §3.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// IsTerminal reports whether s is a terminal state a Job cannot leave.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Job is the process-local scheduler record for one asynchronous generation
// request. Unlike GenerationLog, a Job is never persisted to the database —
// it lives only in the scheduler's job table for the duration of its
// lifecycle plus the configured retention window (spec §3 "Ownership").
type Job struct {
	ID        string
	Status    Status
	Request   models.GenerateRequest
	CreatedAt time.Time
	StartedAt *time.Time
	FinishedAt *time.Time

	Result *models.GenerateResult
	Err    error

	// CancelRequested is set by Cancel on a processing job. The worker reads
	// it once, after Process returns, to record the job as cancelled. While
	// the job runs, cancellation reaches the processor only through its
	// context: the LLM call receives it and the processor checks it once
	// after raw output arrives. Pipeline passes run without a check between
	// them.
	CancelRequested bool
}

// Snapshot is the read-only view of a Job returned to callers. QueuePosition
// is recomputed at observation time for queued jobs (spec §4.6 "status").
type Snapshot struct {
	ID            string         `json:"id"`
	Status        Status         `json:"status"`
	Product       models.Product `json:"product"`
	QueuePosition *int           `json:"queue_position,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	FinishedAt    *time.Time     `json:"finished_at,omitempty"`

	Artifacts models.Artifacts `json:"artifacts,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
	Error     string           `json:"error,omitempty"`
	ElapsedMS *int64           `json:"elapsed_ms,omitempty"`
}

// snapshot builds a Snapshot from a Job. Caller must hold the job's lock (or
// the table lock covering it).
func snapshot(j *Job, queuePosition *int) Snapshot {
	s := Snapshot{
		ID:            j.ID,
		Status:        j.Status,
		Product:       j.Request.Product,
		QueuePosition: queuePosition,
		CreatedAt:     j.CreatedAt,
		StartedAt:     j.StartedAt,
		FinishedAt:    j.FinishedAt,
	}
	if j.Result != nil {
		s.Artifacts = j.Result.Artifacts
		s.Warnings = j.Result.Warnings
		elapsed := j.Result.ElapsedMS
		s.ElapsedMS = &elapsed
	}
	if j.Err != nil {
		s.Error = j.Err.Error()
	}
	return s
}

// Processor runs the full synchronous generation path for one request. The
// scheduler calls it once per dequeued job; pkg/api calls it directly for
// sync-mode requests. Implementations must honor ctx cancellation at the
// safe points named in spec §5.
type Processor interface {
	Process(ctx context.Context, req models.GenerateRequest) (*models.GenerateResult, error)
}
