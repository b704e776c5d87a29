package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// JobType identifies which handler a job is dispatched to.
type JobType string

// JobStatus is the lifecycle state of a job.
// Transitions: pending -> running -> done | failed.
type JobStatus string

const (
	StatusPending JobStatus = "pending"
	StatusRunning JobStatus = "running"
	StatusDone    JobStatus = "done"
	StatusFailed  JobStatus = "failed"
)

const (
	// BatchSize is the maximum number of ids carried by a single job.
	// Larger id lists are split into multiple jobs at enqueue time so one
	// batch's failure cannot block unrelated ids.
	BatchSize = 200

	// DefaultPriority is the priority assigned when the producer does not
	// specify one. Lower values are claimed first.
	DefaultPriority = 2
)

// Job is one unit of queued work. Rows are retained after completion for
// auditability; this package never deletes them.
type Job struct {
	ID         string  `gorm:"primaryKey;size:36"`
	Type       JobType `gorm:"size:64;index"`
	Payload    string  `gorm:"type:text"`
	Priority   int     `gorm:"index:idx_jobs_claim,priority:2"`
	Status     JobStatus `gorm:"size:16;index:idx_jobs_claim,priority:1"`
	Result     string    `gorm:"type:text"`
	Error      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index:idx_jobs_claim,priority:3"`
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// IDs decodes the job payload as a list of entity ids.
func (j *Job) IDs() ([]int, error) {
	if j.Payload == "" {
		return nil, nil
	}

	var ids []int
	if err := json.Unmarshal([]byte(j.Payload), &ids); err != nil {
		return nil, fmt.Errorf("invalid job payload: %w", err)
	}

	if len(ids) > BatchSize {
		return nil, ErrPayloadTooLarge
	}

	return ids, nil
}

func encodeIDs(ids []int) (string, error) {
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode job payload: %w", err)
	}
	return string(data), nil
}
