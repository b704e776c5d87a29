package icons

import "errors"

// ErrStorageConflict indicates the icon upsert kept colliding with concurrent
// writers past the bounded retry. Retryable at the job level.
var ErrStorageConflict = errors.New("icon upsert conflict")
