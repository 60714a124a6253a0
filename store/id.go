package store

import (
	"github.com/google/uuid"
)

// IDGenerator hands out record identifiers.
type IDGenerator interface {
	NewID() (string, error)
}

// UUIDv7Generator yields a millisecond timestamp followed by random bits.
// The uuid package keeps v7 values strictly increasing within a process.
type UUIDv7Generator struct{}

func (UUIDv7Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// IDGeneratorFunc adapts a plain function.
type IDGeneratorFunc func() (string, error)

func (f IDGeneratorFunc) NewID() (string, error) {
	return f()
}
