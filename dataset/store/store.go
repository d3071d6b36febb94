// Package store abstracts where datafiles live: local disk for bench
// runs, memory for tests, S3 for shared corpora.
package store

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a datafile does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store reads and writes immutable datafiles by name.
type Store interface {
	// Open opens a datafile for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a datafile atomically.
	Put(ctx context.Context, name string, data []byte) error
	// List returns the names under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a datafile.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// readAll drains a Blob through its ReaderAt face.
func readAll(b Blob) ([]byte, error) {
	data := make([]byte, b.Size())
	if _, err := b.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

// ReadAll opens name and returns its full contents.
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	blob, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	return readAll(blob)
}
