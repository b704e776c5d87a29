// Package worker runs the job processing loop.
//
// Pollers claim jobs from the queue in priority/age order and dispatch them
// to the handler registered for the job type. The payload is decoded and
// validated at dequeue time, before dispatch. A handler error marks the job
// failed with the cause attached; completion stores the handler's result
// summary. The loop never retries a job itself.
package worker
