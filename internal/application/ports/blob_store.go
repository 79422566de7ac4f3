package ports

import (
	"context"
	"io"
)

type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	GetPublicURL(key string) string
	GetBucket() string
}
