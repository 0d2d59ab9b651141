// Package publish deploys generated site artifacts to their hosting target:
// a local directory (e.g. /var/www/html) or a GCS bucket serving the static
// site.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

// Target is a destination for generated artifacts.
type Target interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
}

// LocalTarget writes artifacts into a directory.
type LocalTarget struct {
	dir string
}

// NewLocal creates a LocalTarget rooted at dir.
func NewLocal(dir string) (*LocalTarget, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &LocalTarget{dir: dir}, nil
}

func (t *LocalTarget) Put(ctx context.Context, name string, data []byte, contentType string) error {
	path := filepath.Join(t.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// GCSTarget uploads artifacts to a Cloud Storage bucket.
type GCSTarget struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a GCSTarget for the given bucket.
func NewGCS(ctx context.Context, bucket string) (*GCSTarget, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSTarget{
		client: client,
		bucket: bucket,
	}, nil
}

func (t *GCSTarget) Put(ctx context.Context, name string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	obj := t.client.Bucket(t.bucket).Object(name)
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}

// Close closes the GCS client.
func (t *GCSTarget) Close() error {
	return t.client.Close()
}
