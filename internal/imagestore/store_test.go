package imagestore

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))
	s := New(dir)

	assert.True(t, s.Exists("a.png"))
	assert.False(t, s.Exists("b.png"))
	assert.False(t, s.Exists("sub.png"), "directories are not images")

	f, err := s.Open("a.png")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = s.Open("b.png")
	assert.ErrorIs(t, err, ErrImageNotFound)

	_, err = s.Open("sub.png")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestStoreRejectsTraversal(t *testing.T) {
	s := New(t.TempDir())

	for _, name := range []string{"", ".", "..", "../secret", "a/b.png", `a\b.png`} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Path(name)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.False(t, s.Exists(name))
		})
	}
}
