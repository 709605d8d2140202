// Package storage wraps the S3-compatible blob store holding user and
// waypoint images. Callers treat the returned URLs as opaque strings.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vishal-singh24/ESM-Backend/internal/config"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ImageStore uploads and deletes images in a single bucket.
type ImageStore struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
}

// New creates a MinIO client from the storage config.
func New(cfg config.StorageConfig) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// EnsureBucket makes sure the image bucket exists before use.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// UploadImage stores one uploaded image under a unique key inside the given
// folder and returns its public URL. Only JPEG and PNG are accepted.
func (s *ImageStore) UploadImage(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("invalid file type %q: only .jpg, .jpeg, and .png are allowed", contentType)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	sanitized := strings.ReplaceAll(filepath.Base(header.Filename), " ", "_")
	key := fmt.Sprintf("%s/%s-%s", folder, uuid.NewString(), sanitized)

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, file, header.Size, opts); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// DeleteImage removes a previously uploaded image given its public URL.
// Unknown URLs are ignored so a stale reference never blocks an update.
func (s *ImageStore) DeleteImage(ctx context.Context, imageURL string) error {
	if imageURL == "" {
		return nil
	}
	key := strings.TrimPrefix(imageURL, s.publicURL+"/")
	if key == imageURL {
		return nil
	}
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	return nil
}
