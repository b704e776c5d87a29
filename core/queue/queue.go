package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// claimAttempts bounds how often ClaimNext retries after losing a claim race
// to another worker before reporting the queue as empty.
const claimAttempts = 3

// Enqueue creates pending jobs of the given type for the ids. Lists longer
// than BatchSize are split into multiple independent jobs. Enqueueing an
// empty id list is a no-op.
func Enqueue(ctx context.Context, db *gorm.DB, jobType JobType, ids []int, priority int) ([]Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var jobs []Job
	for start := 0; start < len(ids); start += BatchSize {
		end := start + BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		payload, err := encodeIDs(ids[start:end])
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, Job{
			ID:       uuid.NewString(),
			Type:     jobType,
			Payload:  payload,
			Priority: priority,
			Status:   StatusPending,
		})
	}

	if err := db.WithContext(ctx).Create(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to enqueue %s jobs: %w", jobType, err)
	}

	return jobs, nil
}

// EnqueueBare creates a single pending job with no id payload, for job types
// that operate on external aggregates rather than id batches.
func EnqueueBare(ctx context.Context, db *gorm.DB, jobType JobType, priority int) (*Job, error) {
	job := Job{
		ID:       uuid.NewString(),
		Type:     jobType,
		Priority: priority,
		Status:   StatusPending,
	}

	if err := db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to enqueue %s job: %w", jobType, err)
	}

	return &job, nil
}

// ClaimNext atomically transitions the most urgent pending job to running and
// returns it. Jobs are ordered by (priority asc, created_at asc); ties beyond
// that are broken arbitrarily but deterministically by id.
//
// The claim is a conditional update on status, so under concurrent workers
// each job is handed to exactly one caller. Losing the race is not an error;
// the next candidate is tried. Returns ErrNoJob when nothing is pending.
func ClaimNext(ctx context.Context, db *gorm.DB) (*Job, error) {
	for attempt := 0; attempt < claimAttempts; attempt++ {
		var job Job
		err := db.WithContext(ctx).
			Where("status = ?", StatusPending).
			Order("priority asc, created_at asc, id asc").
			First(&job).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoJob
		}
		if err != nil {
			return nil, fmt.Errorf("failed to select pending job: %w", err)
		}

		now := time.Now()
		result := db.WithContext(ctx).Model(&Job{}).
			Where("id = ? AND status = ?", job.ID, StatusPending).
			Updates(map[string]any{"status": StatusRunning, "started_at": now})
		if result.Error != nil {
			return nil, fmt.Errorf("failed to claim job %s: %w", job.ID, result.Error)
		}

		if result.RowsAffected == 1 {
			job.Status = StatusRunning
			job.StartedAt = &now
			return &job, nil
		}

		// Another worker claimed it first, try the next candidate.
	}

	return nil, ErrNoJob
}

// Complete transitions a running job to done and stores a human-readable
// result summary.
func Complete(ctx context.Context, db *gorm.DB, jobID, result string) error {
	return finish(ctx, db, jobID, StatusDone, map[string]any{"result": result})
}

// Fail transitions a running job to failed and stores the error detail for
// operator visibility and external retry policies.
func Fail(ctx context.Context, db *gorm.DB, jobID string, jobErr error) error {
	detail := ""
	if jobErr != nil {
		detail = jobErr.Error()
	}
	return finish(ctx, db, jobID, StatusFailed, map[string]any{"error": detail})
}

func finish(ctx context.Context, db *gorm.DB, jobID string, status JobStatus, fields map[string]any) error {
	fields["status"] = status
	fields["finished_at"] = time.Now()

	result := db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status = ?", jobID, StatusRunning).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to mark job %s %s: %w", jobID, status, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job %s: %w", jobID, ErrInvalidTransition)
	}

	return nil
}

// Requeue re-enqueues a failed job as a fresh pending job with the same type,
// payload and priority. The failed row is kept untouched for auditability.
// This is the primitive an external retry policy composes with; the queue
// itself never retries.
func Requeue(ctx context.Context, db *gorm.DB, jobID string) (*Job, error) {
	var failed Job
	err := db.WithContext(ctx).Where("id = ? AND status = ?", jobID, StatusFailed).First(&failed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("job %s is not failed: %w", jobID, ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	requeued := Job{
		ID:       uuid.NewString(),
		Type:     failed.Type,
		Payload:  failed.Payload,
		Priority: failed.Priority,
		Status:   StatusPending,
	}

	if err := db.WithContext(ctx).Create(&requeued).Error; err != nil {
		return nil, fmt.Errorf("failed to requeue job %s: %w", jobID, err)
	}

	return &requeued, nil
}

// Recent returns the most recently created jobs, newest first.
func Recent(ctx context.Context, db *gorm.DB, limit int) ([]Job, error) {
	var jobs []Job
	err := db.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}
	return jobs, nil
}

// Stats returns the number of jobs per status.
func Stats(ctx context.Context, db *gorm.DB) (map[JobStatus]int64, error) {
	var rows []struct {
		Status JobStatus
		Count  int64
	}

	err := db.WithContext(ctx).Model(&Job{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	stats := make(map[JobStatus]int64, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}

	return stats, nil
}
