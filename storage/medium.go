// Package storage holds the persistent key/value media the record store
// writes collections to. A medium stores opaque strings by key and replaces
// a key's value in full on every write.
package storage

import (
	"context"
	"errors"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Medium is the "get/set string by key" contract.
//
// GetItem reports ok=false when the key has never been written or was removed.
// SetItem must not leave a partially written value visible to readers.
// RemoveItem on a missing key is not an error.
type Medium interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key string, value string) error
	RemoveItem(ctx context.Context, key string) error
}
