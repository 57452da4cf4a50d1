// internal/infrastructure/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value
var ErrNotFound = errors.New("storage: key not found")

// KeyValue is the durable key-value store the cart persists into.
// Implementations must treat a missing key as ErrNotFound, never as
// an empty value.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
