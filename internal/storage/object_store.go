package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"aigallery/internal/config"
)

// ObjectStore serves gallery images out of a bucket through presigned URLs.
// Nothing is ever written to it by this service.
type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = time.Hour
	}

	return &ObjectStore{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *ObjectStore) BucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.BucketOriginals)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.BucketOriginals, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.cfg.BucketOriginals)
	}
	return nil
}

func ObjectKey(imageID int) string {
	return fmt.Sprintf("gallery/%d.jpg", imageID)
}

func ThumbnailKey(imageID int) string {
	return fmt.Sprintf("gallery/thumbs/%d.jpg", imageID)
}

// ImageURLs returns presigned GET URLs for the full image and its thumbnail.
// Signing is local when a region is configured.
func (s *ObjectStore) ImageURLs(ctx context.Context, imageID int) (string, string, error) {
	full, err := s.client.PresignedGetObject(ctx, s.cfg.BucketOriginals, ObjectKey(imageID), s.cfg.URLExpiry, nil)
	if err != nil {
		return "", "", fmt.Errorf("presign %d: %w", imageID, err)
	}
	thumb, err := s.client.PresignedGetObject(ctx, s.cfg.BucketOriginals, ThumbnailKey(imageID), s.cfg.URLExpiry, nil)
	if err != nil {
		return "", "", fmt.Errorf("presign thumbnail %d: %w", imageID, err)
	}
	return full.String(), thumb.String(), nil
}
