package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrPermissionDenied is returned when the backend refuses a read or
	// write. Consumers must keep it distinguishable from an empty result.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnavailable covers transient backend failures.
	ErrUnavailable = errors.New("backend unavailable")
)

type serverTimestamp struct{}

// ServerTimestamp is a sentinel value. Used as a field value in a write, it
// is replaced by a backend-assigned creation/update timestamp.
var ServerTimestamp any = serverTimestamp{}

// Doc is a read-only view of one stored document.
type Doc interface {
	ID() string
	// Data returns the raw document fields.
	Data() map[string]any
	// DataTo decodes the document into a tagged struct.
	DataTo(v any) error
}

// DocEvent is one emission of a single-document watch. When the document
// does not exist, Exists is false and Doc is nil.
type DocEvent struct {
	Doc    Doc
	Exists bool
	Err    error
}

// QueryEvent is one emission of a collection watch. Docs is always the full
// current result set, never a diff.
type QueryEvent struct {
	Docs []Doc
	Err  error
}

// Cond is a single field filter. Only "==" is used by this application.
type Cond struct {
	Field string
	Op    string
	Value any
}

// Query names a collection (slash-separated path, subcollections allowed)
// with optional filtering and ordering applied at subscription time.
type Query struct {
	Path    string
	Where   []Cond
	OrderBy string
	Desc    bool
}

// Store is the document-store contract the state layer depends on: CRUD,
// atomic array membership updates, and live snapshot subscriptions that push
// the full current result set on every change.
type Store interface {
	Get(ctx context.Context, path, id string) (Doc, error)
	// Set fully overwrites the document, creating it if absent.
	Set(ctx context.Context, path, id string, data any) error
	// Merge upserts only the given fields, leaving others untouched.
	Merge(ctx context.Context, path, id string, fields map[string]any) error
	// Update modifies fields of an existing document; ErrNotFound otherwise.
	Update(ctx context.Context, path, id string, fields map[string]any) error
	// Add creates a document with a generated id.
	Add(ctx context.Context, path string, data map[string]any) (string, error)
	Delete(ctx context.Context, path, id string) error

	// ArrayUnion adds values to an array field, skipping duplicates.
	ArrayUnion(ctx context.Context, path, id, field string, values ...any) error
	// ArrayRemove removes all occurrences of the values from an array field.
	ArrayRemove(ctx context.Context, path, id, field string, values ...any) error

	// WatchDoc emits the current document immediately and on every change
	// until ctx is cancelled.
	WatchDoc(ctx context.Context, path, id string) <-chan DocEvent
	// WatchQuery emits the full result set immediately and on every change
	// until ctx is cancelled. A denial arrives as an event with Err set.
	WatchQuery(ctx context.Context, q Query) <-chan QueryEvent

	Close() error
}
