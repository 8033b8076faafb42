package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveReadRemove(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	data := []byte("jpeg bytes")
	rel, err := store.Save(ProductImageDir, "moto.JPG", data)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, ProductImageDir+"/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"), "extension is lowercased: %s", rel)

	got, err := store.Read(rel)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Remove(rel))
	_, err = store.Read(rel)
	assert.Error(t, err)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, err := store.Save(GalleryImageDir, "a.png", []byte("one"))
	require.NoError(t, err)
	second, err := store.Save(GalleryImageDir, "a.png", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveDefaultsExtension(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	rel, err := store.Save(ProductImageDir, "noext", []byte("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".jpg"))
}

func TestRemoveToleratesMissingFile(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	assert.NoError(t, store.Remove("productos/imagenes/gone.jpg"))
	assert.NoError(t, store.Remove(""))
}

func TestSaveCreatesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)

	rel, err := store.Save(GalleryImageDir, "b.jpg", []byte("data"))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
