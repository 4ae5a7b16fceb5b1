package store

import "errors"

var (
	// ErrDuplicateID is returned by Insert when the generated or
	// supplied id already exists in the catalog.
	ErrDuplicateID = errors.New("duplicate anime id")

	// ErrNotFound is returned by mutations that require an existing
	// entry, such as UpsertEpisode on an unknown anime id.
	ErrNotFound = errors.New("anime not found")
)
