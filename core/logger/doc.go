// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production).
//
// # Job Awareness
//
// The worker loop processes one job at a time, and every log line emitted
// during a job should be attributable to it. The WithJob helper attaches the
// job id and type to a logger, ensuring all logs for a specific job can be
// correlated in aggregation.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Worker started")
//
//	// While executing a job:
//	l := logger.WithJob(log, job.ID, string(job.Type))
//	l.Error("Job failed", zap.Error(err))
package logger
