package ports

import (
	"context"
	"io"
)

type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Path(key string) (string, error)
	Remove(key string) error
}
