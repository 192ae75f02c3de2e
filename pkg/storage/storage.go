package storage

import "context"

// ObjectStorage persists an uploaded file and returns a durable public URL.
// The pipeline only writes originals here (PDFs); it never reads them back.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
