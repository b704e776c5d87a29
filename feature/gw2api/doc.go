// Package gw2api is the read-only client for the external game data APIs.
//
// It fetches bulk per-language entity payloads, full id lists, the current
// game build and aggregate unlock statistics. Every request carries a bounded
// timeout; non-200 responses and transport failures surface as
// ErrSourceUnavailable, which the job queue treats as retryable.
//
// Per-id problems (malformed elements, incomplete language coverage) are
// isolated and reported separately so a single bad entity never fails a whole
// batch.
package gw2api
