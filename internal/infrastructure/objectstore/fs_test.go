package objectstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/infrastructure/objectstore"
)

func TestFileStore_PutRemove(t *testing.T) {
	dir := t.TempDir()
	fs, err := objectstore.NewFileStore(dir, "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	key := "sites/1/2024/05/abc.jpg"
	require.NoError(t, fs.Put(ctx, key, strings.NewReader("foto"), 4, "image/jpeg"))

	b, err := os.ReadFile(filepath.Join(dir, "sites", "1", "2024", "05", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "foto", string(b))
	assert.Equal(t, "/uploads/sites/1/2024/05/abc.jpg", fs.PublicURL(key))

	require.NoError(t, fs.Remove(ctx, key))
	require.NoError(t, fs.Remove(ctx, key), "eliminar dos veces no es error")
	_, err = os.Stat(filepath.Join(dir, "sites", "1", "2024", "05", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_RechazaSalirDelDirectorio(t *testing.T) {
	fs, err := objectstore.NewFileStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	err = fs.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), 1, "text/plain")
	assert.ErrorIs(t, err, objectstore.ErrInvalidKey)
	assert.ErrorIs(t, fs.Remove(context.Background(), "../fuera.jpg"), objectstore.ErrInvalidKey)
}
