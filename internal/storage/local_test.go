package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateName(t *testing.T) {
	now := time.Unix(1718000000, 123456000)
	assert.Equal(t, "1718000000.123456-a.png", GenerateName(now, "a.png"))
	assert.Equal(t, "1718000000.0-a.png", GenerateName(time.Unix(1718000000, 0), "a.png"))
	assert.Equal(t, "1718000000.123456-b.jpg", GenerateName(now, `C:\photos\b.jpg`))
	assert.Equal(t, "1718000000.123456-upload", GenerateName(now, "../"))
}

func TestSaveAndPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s := NewLocalStore(dir)

	data := []byte("0123456789")
	require.NoError(t, s.Save("1.5-a.png", data))

	path, err := s.Path("1.5-a.png")
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, s.Save("1.5-a.png", []byte("new")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestPathErrors(t *testing.T) {
	s := NewLocalStore(t.TempDir())

	_, err := s.Path("missing.png")
	assert.True(t, errors.Is(err, ErrNotFound))

	for _, name := range []string{"", ".", "..", "../etc/passwd", `..\secret`, "a/b"} {
		_, err := s.Path(name)
		assert.True(t, errors.Is(err, ErrInvalidName), name)
	}

	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "sub"), 0o755))
	_, err = s.Path("sub")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveRejectsTraversal(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	assert.True(t, errors.Is(s.Save("../x", []byte("x")), ErrInvalidName))
}
