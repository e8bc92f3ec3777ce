package initializers

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Kariqs/decorshop-api/utils"
)

// InitStorage returns the configured file store. The local store's folders
// are created and probed for writability so a misconfigured root fails at
// startup instead of on the first upload.
func InitStorage(ctx context.Context, cfg *Config) (utils.FileStore, error) {
	if cfg.StorageDriver == "s3" {
		store, err := utils.NewS3Store(ctx, cfg.S3Bucket, "", cfg.S3PublicBaseURL)
		if err != nil {
			return nil, err
		}
		log.Printf("Storing uploads in S3 bucket %s.", cfg.S3Bucket)
		return store, nil
	}

	for _, dir := range []string{utils.ProductsDir, utils.SlipsDir, utils.ProfilesDir} {
		path := filepath.Join(cfg.UploadDir, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create upload folder %s: %w", path, err)
		}
		probe, err := os.CreateTemp(path, ".probe-*")
		if err != nil {
			return nil, fmt.Errorf("upload folder %s is not writable: %w", path, err)
		}
		probe.Close()
		if err := os.Remove(probe.Name()); err != nil {
			return nil, fmt.Errorf("clean up probe in %s: %w", path, err)
		}
	}

	log.Printf("Storing uploads in %s.", cfg.UploadDir)
	return utils.NewLocalStore(cfg.UploadDir, cfg.PublicURLPrefix), nil
}
