package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is the encoder quality used for every stored upload.
const JPEGQuality = 85

// MaxImagePixels bounds the decoded size of an upload, independent of its
// compressed byte count.
const MaxImagePixels = 40_000_000

var (
	ErrImageDecode   = errors.New("uploaded file is not a supported image")
	ErrImageTooLarge = errors.New("uploaded image is too large")
)

// NormalizeImage decodes any registered image format, flattens transparency
// onto a white background and re-encodes the result as JPEG.
func NormalizeImage(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrImageTooLarge
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, ErrImageTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := src.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// IngestImage normalizes r and stores it at key, returning the public URL.
func IngestImage(ctx context.Context, store FileStore, r io.Reader, key string, maxBytes int64) (string, error) {
	data, err := NormalizeImage(r, maxBytes)
	if err != nil {
		return "", err
	}
	if err := store.Save(ctx, key, data); err != nil {
		return "", err
	}
	return store.URL(key), nil
}
