// Package storage serializes the accumulated result set.
package storage

import (
	"github.com/boxdtools/boxdexport/internal/types"
)

// Columns is the fixed export schema, in output order. Every backend
// emits exactly these fields regardless of which were defaulted.
var Columns = []string{
	"movie_id",
	"username",
	"movie_name",
	"year",
	"genres",
	"rating",
	"popularity",
	"vote_average",
	"vote_count",
}

// Storage is the interface for all export backends.
type Storage interface {
	// Store persists a batch of records.
	Store(records []types.FilmRecord) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the backend identifier.
	Name() string
}
