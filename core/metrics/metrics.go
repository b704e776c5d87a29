package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var jobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gamedata_jobs_processed_total",
	Help: "Number of jobs processed by the worker, by job type and outcome.",
}, []string{"type", "status"})

var jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "gamedata_job_duration_seconds",
	Help:    "Wall-clock duration of job execution.",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
}, []string{"type"})

// JobProcessed counts one finished job with its outcome ("done" or "failed").
func JobProcessed(jobType, status string) {
	jobsProcessed.WithLabelValues(jobType, status).Inc()
}

// ObserveJobDuration records how long a job took to execute.
func ObserveJobDuration(jobType string, d time.Duration) {
	jobDuration.WithLabelValues(jobType).Observe(d.Seconds())
}
