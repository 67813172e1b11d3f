package model

import "errors"

// Error kinds returned by catalog operations. Callers match them with
// errors.Is; the wrapped message carries the offending value.
var (
	// ErrInvalidArgument reports a bad enum value, a nil input or a
	// malformed CSV header.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported reports a recognized field that cannot be sorted on.
	ErrUnsupported = errors.New("unsupported")

	// ErrAlreadyExists reports a page stub that is already on disk.
	ErrAlreadyExists = errors.New("already exists")
)
