package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.csv")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestMapping_OpenReadClose(t *testing.T) {
	content := []byte("values\nNew York\nnew york\n")
	m, err := Open(writeFile(t, content), AccessSequential)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())

	buf := make([]byte, 8)
	n, err := m.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "New York", string(buf))

	t.Run("past end", func(t *testing.T) {
		n, err := m.ReadAt(make([]byte, 4), 1000)
		assert.Equal(t, 0, n)
		assert.Equal(t, io.EOF, err)
	})

	t.Run("partial", func(t *testing.T) {
		buf := make([]byte, 20)
		n, err := m.ReadAt(buf, int64(len(content)-9))
		assert.Equal(t, 9, n)
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, "new york\n", string(buf[:n]))
	})

	t.Run("negative offset", func(t *testing.T) {
		_, err := m.ReadAt(buf, -1)
		assert.Equal(t, ErrInvalidOffset, err)
	})
}

func TestMapping_EmptyFile(t *testing.T) {
	m, err := Open(writeFile(t, nil), AccessDefault)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Equal(t, io.EOF, err)
}

func TestMapping_AfterClose(t *testing.T) {
	m, err := Open(writeFile(t, []byte("data")), AccessRandom)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), AccessDefault)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
