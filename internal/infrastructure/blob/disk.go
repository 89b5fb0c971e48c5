// Package blob stores file bytes on a local filesystem namespace,
// addressed by opaque storage keys. Blobs are immutable once written.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type Store struct {
	logger  *zap.Logger
	baseDir string
}

func New(logger *zap.Logger, baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}

	return &Store{logger: logger, baseDir: baseDir}, nil
}

// Save writes r under key. O_EXCL enforces append-only-per-key: a key is
// written at most once.
func (s *Store) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	path, err := s.Path(key)
	if err != nil {
		return 0, err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob %s: %w", key, err)
	}

	n, err := io.Copy(dst, r)
	if cerr := dst.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		// A half-written blob is useless; try to drop it.
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("failed to remove partial blob", zap.String("key", key), zap.Error(rmErr))
		}
		return 0, fmt.Errorf("failed to write blob %s: %w", key, err)
	}

	return n, nil
}

// Path resolves key to an absolute location inside the base dir,
// rejecting anything that could escape it.
func (s *Store) Path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	return filepath.Join(s.baseDir, key), nil
}

func (s *Store) Remove(key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	return os.Remove(path)
}
