package schedule

import "errors"

var (
	// ErrInvalidInput is returned when a mutation is given a missing
	// identifier or an unparseable date. No state changes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCommunicationNotFound is returned by update/delete for unknown IDs.
	ErrCommunicationNotFound = errors.New("communication not found")
	// ErrCompanyNotFound is returned by company lookups and edits.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrMethodNotFound is returned by method lookups and edits.
	ErrMethodNotFound = errors.New("communication method not found")
)
