package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskObjectStore_PutAndDelete(t *testing.T) {
	store := NewDiskObjectStore(t.TempDir())
	require.NoError(t, store.EnsureRoot())

	locator, err := store.Put("cv_test.pdf", []byte("content"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "cv_test.pdf", locator)

	require.NoError(t, store.Delete("cv_test.pdf"))
}

func TestDiskObjectStore_PutWritesFile(t *testing.T) {
	root := t.TempDir()
	store := NewDiskObjectStore(root)
	require.NoError(t, store.EnsureRoot())

	_, err := store.Put("cv_abc.pdf", []byte("hello"), "application/pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "cv_abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestDiskObjectStore_DeleteMissingKeyIsNotAnError(t *testing.T) {
	store := NewDiskObjectStore(t.TempDir())
	require.NoError(t, store.EnsureRoot())

	assert.NoError(t, store.Delete("never_uploaded.pdf"))
}

func TestDiskObjectStore_RejectsPathTraversal(t *testing.T) {
	store := NewDiskObjectStore(t.TempDir())
	require.NoError(t, store.EnsureRoot())

	for _, key := range []string{"", "../escape.pdf", "a/b.pdf", `a\b.pdf`} {
		_, err := store.Put(key, []byte("x"), "application/pdf")
		assert.Error(t, err, "key %q should be rejected", key)
	}
}
