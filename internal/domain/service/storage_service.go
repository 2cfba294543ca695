package service

import "context"

// ObjectStorage stores uploaded files such as seller licenses.
type ObjectStorage interface {
	// Upload writes data under key and returns the URL the object can be referenced by.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object under key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
