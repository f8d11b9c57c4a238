package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Open(t *testing.T) {
	dir := t.TempDir()
	data := []byte("values\nab\nabc\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.csv"), data, 0o600))

	store := NewLocalStore(dir)
	ctx := context.Background()

	blob, err := store.Open(ctx, "input.csv")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 2)
	n, err := blob.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ab", string(buf))

	_, err = blob.ReadAt(buf, -1)
	assert.ErrorIs(t, err, io.EOF)

	all, err := io.ReadAll(NewReader(blob))
	require.NoError(t, err)
	assert.Equal(t, data, all)
}

func TestLocalStore_NotFound(t *testing.T) {
	_, err := NewLocalStore(t.TempDir()).Open(context.Background(), "missing.csv")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalStore(t.TempDir()).Open(ctx, "any.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	src := []byte("values\nfoo\n")
	require.NoError(t, store.Put(ctx, "a.csv", src))
	require.NoError(t, store.Put(ctx, "b.csv", []byte("x")))
	src[0] = 'X'

	blob, err := store.Open(ctx, "a.csv")
	require.NoError(t, err)

	all, err := io.ReadAll(NewReader(blob))
	require.NoError(t, err)
	assert.Equal(t, "values\nfoo\n", string(all))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv"}, names)

	require.NoError(t, store.Delete(ctx, "a.csv"))
	_, err = store.Open(ctx, "a.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

// sectionBlob has no Mappable fast path.
type sectionBlob struct{ data []byte }

func (b sectionBlob) ReadAt(p []byte, off int64) (int, error) {
	return (&memoryBlob{data: b.data}).ReadAt(p, off)
}
func (b sectionBlob) Close() error { return nil }
func (b sectionBlob) Size() int64  { return int64(len(b.data)) }

func TestNewReader_Section(t *testing.T) {
	all, err := io.ReadAll(NewReader(sectionBlob{data: []byte("streamed")}))
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(all))
}
