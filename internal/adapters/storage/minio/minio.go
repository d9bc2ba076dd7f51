package minio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ port.MediaStore = (*Adapter)(nil)

// Adapter is an adapter for minio acting as the media host
type Adapter struct {
	client     *minio.Client
	config     config.MinioConfig
	publicBase string
	logger     *slog.Logger
}

// NewAdapter returns Adapter. It creates the bucket when missing and makes its
// objects publicly readable so that built URLs resolve.
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("bucket created", slog.String("bucket", cfg.BucketName))
	}

	if err := client.SetBucketPolicy(ctx, cfg.BucketName, publicReadPolicy(cfg.BucketName)); err != nil {
		return nil, fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return &Adapter{
		client:     client,
		config:     cfg,
		publicBase: PublicBase(cfg),
		logger:     logger,
	}, nil
}

// Upload stores data under publicID and returns the publicID
func (a *Adapter) Upload(ctx context.Context, publicID string, data []byte, contentType string) (string, error) {
	_, err := a.client.PutObject(ctx, a.config.BucketName, publicID, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", publicID, err)
	}

	a.logger.Debug("object uploaded",
		slog.String("public_id", publicID),
		slog.Int("size", len(data)))

	return publicID, nil
}

// BuildURL returns the public URL of publicID. It does not contact the media host.
func (a *Adapter) BuildURL(publicID string) string {
	return BuildURL(a.publicBase, publicID)
}

// ObjectExists reports whether publicID is stored in the bucket
func (a *Adapter) ObjectExists(ctx context.Context, publicID string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.config.BucketName, publicID, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to get object info: %w", err)
	}
	return true, nil
}

// Name implements port.ReadinessCheck
func (a *Adapter) Name() string {
	return "MediaStore[" + a.config.BucketName + "]"
}

// IsReady implements port.ReadinessCheck
func (a *Adapter) IsReady(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.config.BucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", a.config.BucketName)
	}
	return nil
}

// PublicBase returns the base URL objects are served from.
// MINIO_PUBLIC_BASE_URL wins; otherwise the bucket URL on the api endpoint is used.
func PublicBase(cfg config.MinioConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, strings.TrimRight(cfg.Endpoint, "/"), cfg.BucketName)
}

// BuildURL joins base and publicID, escaping each path segment of publicID
func BuildURL(base, publicID string) string {
	segments := strings.Split(strings.Trim(publicID, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return base + "/" + strings.Join(segments, "/")
}

// publicReadPolicy allows anonymous GetObject on every object in bucket
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(publicReadPolicyTemplate, bucket)
}

const publicReadPolicyTemplate = `{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}
	]
}`
