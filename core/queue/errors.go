package queue

import "errors"

var (
	// ErrNoJob is returned by ClaimNext when no pending job exists.
	ErrNoJob = errors.New("no pending job")

	// ErrPayloadTooLarge is returned when a job payload exceeds BatchSize ids.
	ErrPayloadTooLarge = errors.New("job payload exceeds batch size")

	// ErrInvalidTransition is returned when a status transition is attempted
	// on a job that is not in the expected state, e.g. completing a job that
	// is no longer running.
	ErrInvalidTransition = errors.New("invalid job status transition")
)
