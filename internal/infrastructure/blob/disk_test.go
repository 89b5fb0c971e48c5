package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := New(zap.NewNop(), filepath.Join(dir, "blobs"))
	require.NoError(t, err)

	n, err := s.Save(context.Background(), "key-1", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	path, err := s.Path("key-1")
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	require.NoError(t, s.Remove("key-1"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_SaveRejectsDuplicateKey(t *testing.T) {
	s, err := New(zap.NewNop(), t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "key-1", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "key-1", strings.NewReader("second"))
	assert.Error(t, err)

	path, _ := s.Path("key-1")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))
}

func TestStore_PathRejectsTraversal(t *testing.T) {
	s, err := New(zap.NewNop(), t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../etc/passwd", "a/b", `a\b`} {
		_, err := s.Path(key)
		assert.Error(t, err, "key %q must be rejected", key)
	}
}
