package storage

import "context"

// Storage persists whole JSON documents addressed by key.
// Each Save replaces the previous document in full.
type Storage interface {
	// Load decodes the document stored under key into v.
	// A missing document is reported with an error matching fs.ErrNotExist.
	Load(ctx context.Context, key string, v any) error

	// Save encodes v and replaces the document stored under key.
	Save(ctx context.Context, key string, v any) error

	// Exists reports whether a document is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
