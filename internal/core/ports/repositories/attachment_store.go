package repositories

import (
	"context"
	"io"
)

// Attachment is a stored receipt object streamed back to the client.
type Attachment struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
}

// AttachmentStore persists receipt files in an object store. Store runs
// before the owning database transaction commits, so a storage failure
// aborts the mutation.
type AttachmentStore interface {
	// Store writes the object under key and returns an error if the backing
	// store rejects it.
	Store(ctx context.Context, key string, contentType string, size int64, content io.Reader) error

	// Retrieve opens the object stored under key. Callers close the content.
	Retrieve(ctx context.Context, key string) (*Attachment, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}
