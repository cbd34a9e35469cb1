package model

import "errors"

var (
	// ErrNotFound is returned by lookups for an id that is not in the catalogue.
	ErrNotFound = errors.New("not found")
	// ErrInvalid marks input rejected by validation.
	ErrInvalid = errors.New("invalid")
	// ErrMalformedImport means a source file could not be read as tabular data.
	ErrMalformedImport = errors.New("malformed import")
)
