// Package storage persists submissions and reports as keyed objects.
package storage

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ged.storage")

// ErrNotFound is returned when no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// Object is a stored blob with its content type.
type Object struct {
	Key         string
	ContentType string
	Body        []byte
}

// Store is a flat key/value object store. Keys use "/" as a separator.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	// Get returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (Object, error)
	// List returns the keys starting with prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}
