package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned when the requested asset is not present.
// Callers that need idempotent deletion match it with errors.Is.
var ErrNotExist = errors.New("asset does not exist")

// Provider abstracts the backing store for avatar assets. Identifiers
// are flat generated filenames, never user-supplied paths.
type Provider interface {
	// SaveWithContext writes an asset under the given identifier.
	SaveWithContext(ctx context.Context, identifier string, file io.Reader) error

	// GetWithContext opens an asset for reading.
	GetWithContext(ctx context.Context, identifier string) (io.ReadCloser, error)

	// DeleteWithContext removes an asset. A missing asset yields an
	// error matching ErrNotExist.
	DeleteWithContext(ctx context.Context, identifier string) error

	// Exists reports whether the asset is present.
	Exists(ctx context.Context, identifier string) (bool, error)

	// Health checks that the backend is reachable.
	Health(ctx context.Context) error

	// Name returns the backend name.
	Name() string
}
