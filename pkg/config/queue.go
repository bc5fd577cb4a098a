package config

import "time"

// QueueConfig contains the job scheduler's worker pool and retention sizing
// (spec §4.6: bounded FIFO queue of size QueueCapacity, W workers).
type QueueConfig struct {
	// WorkerCount is the number of worker goroutines draining the queue (W).
	WorkerCount int `yaml:"worker_count"`

	// QueueCapacity bounds the number of jobs that may sit in "queued" state
	// at once. Submission beyond this fails fast with QueueFull.
	QueueCapacity int `yaml:"queue_capacity"`

	// RetentionMaxCount keeps at least this many terminal jobs in the job
	// table regardless of age (K in spec §4.6).
	RetentionMaxCount int `yaml:"retention_max_count"`

	// RetentionMaxAge keeps terminal jobs at least this long regardless of
	// count (T in spec §4.6). Retention applies whichever bound is more
	// permissive.
	RetentionMaxAge time.Duration `yaml:"retention_max_age"`

	// SweepInterval is how often the retention sweep runs.
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// DefaultQueueConfig returns the built-in queue defaults.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		WorkerCount:       4,
		QueueCapacity:     100,
		RetentionMaxCount: 200,
		RetentionMaxAge:   1 * time.Hour,
		SweepInterval:     1 * time.Minute,
	}
}
