// Package storage provides the durable key/value media that hold the
// serialized settings document.
package storage

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by media that have no backing store.
var ErrUnavailable = errors.New("storage medium unavailable")

// Medium is a durable string key/value store.
type Medium interface {
	// Get returns the stored value and true, or false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
