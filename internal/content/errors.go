package content

import "errors"

// ErrPersistence wraps a failed publish. The optimistic local state is kept.
var ErrPersistence = errors.New("failed to save changes")
