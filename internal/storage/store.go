package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound reports that a deck file was never produced or has expired.
var ErrNotFound = errors.New("file not found")

// DeckStore persists generated deck files under one storage root and
// serves them back for download. Writes happen exactly once per task,
// inside the worker; the API layer only ever reads.
type DeckStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	Exists(ctx context.Context, name string) (bool, error)
}
