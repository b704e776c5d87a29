package reconcile

import "errors"

var (
	// ErrDuplicateEntity indicates an Added batch tried to re-create an
	// entity that already exists. This signals a logic or data error
	// upstream; the queue treats it as terminal and does not retry.
	ErrDuplicateEntity = errors.New("entity already exists")

	// ErrMalformedPayload indicates upstream data did not match the expected
	// shape for a specific id. The id is isolated and skipped; siblings in
	// the batch continue.
	ErrMalformedPayload = errors.New("malformed entity payload")
)
