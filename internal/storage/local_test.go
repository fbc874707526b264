package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSave(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	t.Run("writes payload under timestamped name", func(t *testing.T) {
		sf, err := store.Save(ctx, "essay.pdf", strings.NewReader("payload bytes"))
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^\d+-essay\.pdf$`), sf.Name)
		assert.Equal(t, int64(len("payload bytes")), sf.Size)

		// Readable immediately after the call returns.
		got, err := os.ReadFile(sf.Path)
		require.NoError(t, err)
		assert.Equal(t, "payload bytes", string(got))
	})

	t.Run("strips directory components from the original name", func(t *testing.T) {
		sf, err := store.Save(ctx, "../../etc/passwd", strings.NewReader("x"))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(sf.Name, "-passwd"))
		assert.NotContains(t, sf.Name, "..")
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := store.Save(ctx, "a.txt", nil)
		assert.Error(t, err)
	})
}

func TestLocalResolve(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	sf, err := store.Save(context.Background(), "notes.txt", strings.NewReader("hi"))
	require.NoError(t, err)

	t.Run("known name", func(t *testing.T) {
		path, err := store.Resolve(sf.Name)
		require.NoError(t, err)
		assert.Equal(t, sf.Path, path)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := store.Resolve("never-uploaded.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("cannot escape the upload directory", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(dir), "outside.txt")
		require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

		_, err := store.Resolve("../outside.txt")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLocalRemove(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	sf, err := store.Save(context.Background(), "gone.txt", strings.NewReader("bye"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(sf.Path))
	_, err = os.Stat(sf.Path)
	assert.True(t, os.IsNotExist(err))

	// Removing an already-missing file succeeds.
	assert.NoError(t, store.Remove(sf.Path))
}

func TestNewLocalCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewLocal(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewLocalEmptyDir(t *testing.T) {
	_, err := NewLocal("")
	assert.Error(t, err)
}
