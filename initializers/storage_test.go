package initializers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kariqs/decorshop-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStorageCreatesFolders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")

	store, err := InitStorage(context.Background(), cfg)
	require.NoError(t, err)
	for _, dir := range []string{utils.ProductsDir, utils.SlipsDir, utils.ProfilesDir} {
		entries, err := os.ReadDir(filepath.Join(cfg.UploadDir, dir))
		require.NoError(t, err)
		assert.Empty(t, entries, "probe file left behind in %s", dir)
	}
	assert.Equal(t, "/static/uploads/slips/1.jpg", store.URL(utils.SlipKey(1)))
}

func TestInitStorageFailsOnUnusableRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	cfg := DefaultConfig()
	cfg.UploadDir = root

	_, err := InitStorage(context.Background(), cfg)
	assert.Error(t, err)
}
