// Package common defines sentinel errors shared by the store, persistence
// backends, configuration, and CLI layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store lookup errors.
	ErrorNotFound = errors.New("not found")

	// Store invariant violations.
	ErrDuplicateID      = errors.New("duplicate id")
	ErrInvalidReference = errors.New("invalid user reference")
	ErrInvalidInterval  = errors.New("end time must be after start time")

	// ErrConflict is returned when a user already has an active entry
	// and a new one is started under the reject policy.
	ErrConflict = errors.New("active entry already exists")

	// ErrPersistence wraps failures of the persistence backend. The in-memory
	// state is kept when it is returned.
	ErrPersistence = errors.New("persistence error")

	// Configuration errors.
	ErrorIncorrectConfig = errors.New("incorrect config")
)
