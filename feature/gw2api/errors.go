package gw2api

import "errors"

// ErrSourceUnavailable indicates the upstream API did not return a success
// status or did not respond within the configured timeout. The caller does
// not retry internally; the error propagates to the job and is surfaced
// through the queue's retry policy.
var ErrSourceUnavailable = errors.New("game api unavailable")
