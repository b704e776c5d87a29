// Package queue implements a durable, priority-ordered, at-least-once job
// queue on top of the relational database.
//
// Jobs move through pending -> running -> done | failed. All cross-worker
// coordination happens through the database: ClaimNext selects the most
// urgent pending job and claims it with a conditional UPDATE, so concurrent
// workers never process the same job twice. There are no in-process locks.
//
// The queue deliberately does not implement retries, backoff or stuck-job
// detection. Failed jobs keep their error detail, and Requeue exposes the
// primitive an external scheduler uses to re-enqueue them as new jobs.
package queue
