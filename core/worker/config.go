package worker

// Config holds configuration for the job worker loop.
type Config struct {
	// PollIntervalSeconds is how long a poller sleeps when the queue is empty.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" default:"5"`
	// Concurrency is the number of concurrent pollers. Each one claims jobs
	// independently; mutual exclusion happens at the storage layer.
	Concurrency int `mapstructure:"concurrency" default:"1"`
}
