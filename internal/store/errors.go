package store

import "errors"

// Sentinel errors shared by the persistence context, the query composer and
// the domain service. Callers match them with errors.Is.
var (
	// ErrInvalidArgument reports a required parameter that was absent. It is
	// raised before any I/O happens.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound reports a lookup whose absence the caller treats as fatal.
	// Plain point lookups signal absence through a flag instead.
	ErrNotFound = errors.New("not found")
	// ErrPersistenceFailure reports a write the store rejected, or a write
	// that affected no rows where the caller requires at least one.
	ErrPersistenceFailure = errors.New("persistence failure")
)
