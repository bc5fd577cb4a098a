package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/config"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// fakeProcessor lets tests control timing and outcome per call.
type fakeProcessor struct {
	mu       sync.Mutex
	calls    int
	block    chan struct{} // if non-nil, Process waits on it (or ctx.Done)
	err      error
	result   *models.GenerateResult
}

func (f *fakeProcessor) Process(ctx context.Context, _ models.GenerateRequest) (*models.GenerateResult, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func testQueueConfig() *config.QueueConfig {
	return &config.QueueConfig{
		WorkerCount:       1,
		QueueCapacity:     2,
		RetentionMaxCount: 10,
		RetentionMaxAge:   time.Hour,
		SweepInterval:     50 * time.Millisecond,
	}
}

func TestSchedulerSubmitAndCompletes(t *testing.T) {
	proc := &fakeProcessor{result: &models.GenerateResult{ElapsedMS: 5}}
	sched := NewScheduler(testQueueConfig(), proc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)
	defer sched.Stop()

	id, err := sched.Submit(models.GenerateRequest{Product: models.ProductXFrame5UI})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := sched.Status(id)
		return err == nil && snap.Status == StatusCompleted
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerQueueFull(t *testing.T) {
	proc := &fakeProcessor{block: make(chan struct{})}
	cfg := testQueueConfig()
	cfg.WorkerCount = 1
	cfg.QueueCapacity = 1
	sched := NewScheduler(cfg, proc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)
	defer func() {
		close(proc.block)
		sched.Stop()
	}()

	// First submission is claimed by the single worker and blocks inside
	// Process; the channel itself still has capacity 1 for the next one.
	_, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		proc.mu.Lock()
		defer proc.mu.Unlock()
		return proc.calls >= 1
	}, time.Second, 5*time.Millisecond)

	_, err = sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)

	_, err = sched.Submit(models.GenerateRequest{})
	assert.ErrorIs(t, err, apperrors.ErrQueueFull)
}

func TestSchedulerStatusUnknownJob(t *testing.T) {
	sched := NewScheduler(testQueueConfig(), &fakeProcessor{})
	_, err := sched.Status("does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestSchedulerCancelQueuedJob(t *testing.T) {
	proc := &fakeProcessor{block: make(chan struct{})}
	cfg := testQueueConfig()
	cfg.WorkerCount = 1
	cfg.QueueCapacity = 2
	sched := NewScheduler(cfg, proc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)
	defer func() {
		close(proc.block)
		sched.Stop()
	}()

	// Occupy the single worker so the second submission stays queued.
	_, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		proc.mu.Lock()
		defer proc.mu.Unlock()
		return proc.calls >= 1
	}, time.Second, 5*time.Millisecond)

	id, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)

	require.NoError(t, sched.Cancel(id))

	snap, err := sched.Status(id)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, snap.Status)
	assert.Nil(t, snap.QueuePosition, "a cancelled job is no longer queued and must not report a queue position")
}

func TestSchedulerCancelQueuedJobShiftsLaterPositions(t *testing.T) {
	proc := &fakeProcessor{}
	cfg := testQueueConfig()
	cfg.QueueCapacity = 3
	sched := NewScheduler(cfg, proc)
	// Workers are never started: every submission stays queued so position
	// math is deterministic.

	first, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)
	second, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)
	third, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)

	snap, err := sched.Status(third)
	require.NoError(t, err)
	require.NotNil(t, snap.QueuePosition)
	assert.Equal(t, 2, *snap.QueuePosition)

	require.NoError(t, sched.Cancel(first))

	snap, err = sched.Status(second)
	require.NoError(t, err)
	require.NotNil(t, snap.QueuePosition)
	assert.Equal(t, 0, *snap.QueuePosition)

	snap, err = sched.Status(third)
	require.NoError(t, err)
	require.NotNil(t, snap.QueuePosition)
	assert.Equal(t, 1, *snap.QueuePosition)
}

func TestSchedulerCancelProcessingJobPropagatesContext(t *testing.T) {
	proc := &fakeProcessor{}
	blocked := make(chan struct{})
	proc.result = nil
	proc.err = nil

	realProc := processorFunc(func(ctx context.Context, _ models.GenerateRequest) (*models.GenerateResult, error) {
		close(blocked)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	sched := NewScheduler(testQueueConfig(), realProc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)
	defer sched.Stop()

	id, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)

	<-blocked
	require.NoError(t, sched.Cancel(id))

	require.Eventually(t, func() bool {
		snap, err := sched.Status(id)
		return err == nil && snap.Status == StatusCancelled
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerCancelTerminalJobFails(t *testing.T) {
	proc := &fakeProcessor{result: &models.GenerateResult{}}
	sched := NewScheduler(testQueueConfig(), proc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)
	defer sched.Stop()

	id, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := sched.Status(id)
		return err == nil && snap.Status == StatusCompleted
	}, time.Second, 5*time.Millisecond)

	err = sched.Cancel(id)
	assert.ErrorIs(t, err, apperrors.ErrNotCancellable)
}

// processorFunc adapts a function to the Processor interface for tests.
type processorFunc func(ctx context.Context, req models.GenerateRequest) (*models.GenerateResult, error)

func (f processorFunc) Process(ctx context.Context, req models.GenerateRequest) (*models.GenerateResult, error) {
	return f(ctx, req)
}

var errTestProcessor = errors.New("fake processor error")

func TestSchedulerFailedJob(t *testing.T) {
	proc := &fakeProcessor{err: errTestProcessor}
	sched := NewScheduler(testQueueConfig(), proc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)
	defer sched.Stop()

	id, err := sched.Submit(models.GenerateRequest{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap, err := sched.Status(id)
		return err == nil && snap.Status == StatusFailed
	}, time.Second, 5*time.Millisecond)

	snap, err := sched.Status(id)
	require.NoError(t, err)
	assert.Contains(t, snap.Error, "fake processor error")
}
