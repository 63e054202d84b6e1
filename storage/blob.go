// Package storage holds the blob store behind the file catalog. Content is
// addressed by an opaque handle returned from Put; metadata records keep the
// handle and never touch the bytes again.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

type PutInput struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	// Metadata is attached to the stored object for traceability
	// (owner and folder ids); it is never read back on the serving path.
	Metadata map[string]string
}

// Object is an open handle on stored content. Body streams the bytes and
// must be closed by the caller.
type Object struct {
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

type BlobStore interface {
	// Put stores the content under a fresh handle and returns it.
	Put(ctx context.Context, in PutInput) (string, error)
	// Get opens the content stored under handle. Returns ErrNotFound
	// when the handle is unknown.
	Get(ctx context.Context, handle string) (*Object, error)
}
