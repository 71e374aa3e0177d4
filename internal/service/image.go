package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/pageza/zenkitchen/backend/config"
)

// presignTTL is the lifetime of links to objects in a private S3 bucket.
const presignTTL = 7 * 24 * time.Hour

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/heic": ".heic",
}

// IsImageType reports whether contentType is an accepted upload type.
func IsImageType(contentType string) bool {
	_, ok := imageExtensions[strings.ToLower(contentType)]
	return ok
}

// ObjectKey builds a unique key for an owner's upload, keeping the
// extension of the original file name when the content type is unknown.
func ObjectKey(owner, filename, contentType string) string {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		ext = strings.ToLower(path.Ext(filename))
	}
	return fmt.Sprintf("uploads/%s/%s%s", owner, uuid.New().String(), ext)
}

// S3Uploader stores objects in an AWS S3 bucket.
type S3Uploader struct {
	s3Config *config.S3Config
}

func NewS3Uploader(s3Config *config.S3Config) *S3Uploader {
	return &S3Uploader{s3Config: s3Config}
}

// Upload uploads data to S3 and returns the public URL, or a presigned one
// when the bucket is private.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := u.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", collaboratorError("upload", fmt.Errorf("failed to upload to S3: %w", err))
	}

	if !u.s3Config.PublicRead {
		url, err := u.s3Config.GeneratePresignedURL(ctx, key, presignTTL)
		if err != nil {
			return "", collaboratorError("upload", fmt.Errorf("failed to presign %s: %w", key, err))
		}
		return url, nil
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.s3Config.BucketName, key)
	log.Printf("[ImageService] Uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

// MinioUploader stores objects in an S3-compatible MinIO bucket.
type MinioUploader struct {
	minioConfig *config.MinioConfig
}

func NewMinioUploader(minioConfig *config.MinioConfig) *MinioUploader {
	return &MinioUploader{minioConfig: minioConfig}
}

func (u *MinioUploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := u.minioConfig.Client.PutObject(ctx, u.minioConfig.BucketName, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", collaboratorError("upload", fmt.Errorf("failed to upload to MinIO: %w", err))
	}

	publicURL := fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.minioConfig.PublicURL, "/"), u.minioConfig.BucketName, key)
	log.Printf("[ImageService] Uploaded image to MinIO: %s", publicURL)
	return publicURL, nil
}

// NewUploader builds the uploader selected by STORAGE_BACKEND. It returns
// nil when object storage is disabled.
func NewUploader(ctx context.Context, cfg *config.Config) (Uploader, error) {
	switch cfg.StorageBackend {
	case "":
		return nil, nil
	case "s3":
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if s3Config.PublicRead {
			if err := s3Config.SetupBucketPolicy(ctx); err != nil {
				log.Printf("[ImageService] Failed to apply public bucket policy: %v", err)
			}
		}
		return NewS3Uploader(s3Config), nil
	case "minio":
		minioConfig, err := config.NewMinioConfig(cfg)
		if err != nil {
			return nil, err
		}
		if err := minioConfig.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return NewMinioUploader(minioConfig), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
