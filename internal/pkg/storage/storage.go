package storage

import (
	"context"
	"io"
)

// Storage abstracts where photo blobs live. The server ships with the
// local filesystem implementation; an object store can be swapped in
// behind the same interface.
type Storage interface {
	// Save writes content at the given relative path, creating parent
	// directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
