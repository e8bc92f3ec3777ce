package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKeys(t *testing.T) {
	assert.Equal(t, "products/3_1.jpg", ProductImageKey(3, 1))
	assert.Equal(t, "slips/42.jpg", SlipKey(42))
	assert.Equal(t, "profiles/user_9.jpg", ProfileImageKey(9))
}

func TestLocalStoreSaveOverwriteRemove(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/static/uploads/")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, SlipKey(1), []byte("first")))
	require.NoError(t, store.Save(ctx, SlipKey(1), []byte("second")))

	data, err := os.ReadFile(filepath.Join(root, "slips", "1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Join(root, "slips"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	assert.Equal(t, "/static/uploads/slips/1.jpg", store.URL(SlipKey(1)))

	require.NoError(t, store.Remove(ctx, SlipKey(1)))
	require.NoError(t, store.Remove(ctx, SlipKey(1)))
	_, err = os.Stat(filepath.Join(root, "slips", "1.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/static/uploads")
	for _, key := range []string{"", "../etc/passwd", "/abs/path.jpg", "."} {
		assert.ErrorIs(t, store.Save(context.Background(), key, []byte("x")), ErrInvalidKey, key)
	}
}

func TestS3StoreURL(t *testing.T) {
	store := &S3Store{Bucket: "decor", Prefix: "uploads"}
	assert.Equal(t, "https://decor.s3.amazonaws.com/uploads/slips/1.jpg", store.URL(SlipKey(1)))

	store.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/uploads/products/1_2.jpg", store.URL(ProductImageKey(1, 2)))
}
