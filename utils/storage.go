package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Upload folders, relative to the storage root.
const (
	ProductsDir = "products"
	SlipsDir    = "slips"
	ProfilesDir = "profiles"
)

var ErrInvalidKey = errors.New("invalid storage key")

// FileStore persists normalized uploads under deterministic keys.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

func ProductImageKey(productID uint, slot int) string {
	return fmt.Sprintf("%s/%d_%d.jpg", ProductsDir, productID, slot)
}

func SlipKey(orderID uint) string {
	return fmt.Sprintf("%s/%d.jpg", SlipsDir, orderID)
}

func ProfileImageKey(userID uint) string {
	return fmt.Sprintf("%s/user_%d.jpg", ProfilesDir, userID)
}

// LocalStore keeps files on disk below Root and serves them under URLPrefix.
type LocalStore struct {
	Root      string
	URLPrefix string
}

func NewLocalStore(root, urlPrefix string) *LocalStore {
	return &LocalStore{Root: root, URLPrefix: urlPrefix}
}

func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Root, clean), nil
}

// Save writes data to a temp file next to the target and renames it into
// place, so readers never observe a partial file.
func (s *LocalStore) Save(ctx context.Context, key string, data []byte) error {
	dest, err := s.path(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create upload folder: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move %s into place: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return strings.TrimRight(s.URLPrefix, "/") + "/" + key
}

// S3Store uploads files to a bucket with the aws-sdk-go-v2 upload manager.
type S3Store struct {
	Bucket        string
	Prefix        string
	PublicBaseURL string

	client   *s3.Client
	uploader *manager.Uploader
}

func NewS3Store(ctx context.Context, bucket, prefix, publicBaseURL string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Store{
		Bucket:        bucket,
		Prefix:        strings.Trim(prefix, "/"),
		PublicBaseURL: publicBaseURL,
		client:        client,
		uploader:      manager.NewUploader(client),
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

func (s *S3Store) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ACL:         "public-read",
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	if s.PublicBaseURL != "" {
		return strings.TrimRight(s.PublicBaseURL, "/") + "/" + s.objectKey(key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.Bucket, s.objectKey(key))
}
