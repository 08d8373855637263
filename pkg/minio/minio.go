// Package minio implements the media gateway on top of a MinIO (or any
// S3-compatible) backend.
package minio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"media-feed/pkg/config"
	"media-feed/pkg/logger"
	"media-feed/pkg/storage"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts miniogo.PutObjectOptions) (miniogo.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts miniogo.RemoveObjectOptions) error
}

type Storage struct {
	client     objectStore
	bucket     string
	folder     string
	publicBase string
}

var _ storage.Gateway = (*Storage)(nil)

// NewStorage creates a MinIO client, ensures the bucket exists with a
// public-read policy, and returns a ready-to-use Storage.
func NewStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Storage, error) {
	client, err := miniogo.New(cfg.StorageEndpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.StoragePublicKey, cfg.StoragePrivateKey, ""),
		Secure: cfg.StorageUseSSL,
		Region: cfg.StorageRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, miniogo.MakeBucketOptions{Region: cfg.StorageRegion}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.StorageBucket, err)
		}
		log.Info("storage: created bucket %q", cfg.StorageBucket)
	}

	if err := client.SetBucketPolicy(ctx, cfg.StorageBucket, publicReadPolicy(cfg.StorageBucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	publicBase := cfg.StorageURLEndpoint
	if publicBase == "" {
		publicBase = client.EndpointURL().String() + "/" + cfg.StorageBucket
	}

	return &Storage{
		client:     client,
		bucket:     cfg.StorageBucket,
		folder:     cfg.StorageFolder,
		publicBase: publicBase,
	}, nil
}

// Upload streams r to the bucket. size must be the exact byte count.
func (s *Storage) Upload(ctx context.Context, r io.ReadSeeker, size int64, fileName string, opts storage.UploadOptions) (*storage.UploadResult, error) {
	name := storage.ObjectName(fileName, opts.UseUniqueFileName)
	key := storage.ObjectKey(s.folder, name)

	putOpts := miniogo.PutObjectOptions{ContentType: opts.ContentType}
	if len(opts.Tags) > 0 {
		putOpts.UserTags = make(map[string]string, len(opts.Tags))
		for _, tag := range opts.Tags {
			putOpts.UserTags[tag] = "true"
		}
	}

	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, putOpts); err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}

	// minio-go only returns once the server acknowledged the object with 200.
	return &storage.UploadResult{
		FileID:         key,
		Name:           name,
		URL:            storage.PublicURL(s.publicBase, key),
		HTTPStatusCode: http.StatusOK,
	}, nil
}

// Delete removes the object identified by fileID from the bucket.
func (s *Storage) Delete(ctx context.Context, fileID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, fileID, miniogo.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", fileID, err)
	}
	return nil
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
