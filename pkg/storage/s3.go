package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"villa-rental/pkg/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3 stores photos in an S3-compatible bucket.
type S3 struct {
	bucket         string
	publicBaseURL  string
	client         *minio.Client
	log            *zap.Logger
	bucketInitOnce sync.Once
	bucketInitErr  error
}

func NewS3(config utils.StorageConfig, log *zap.Logger) (*S3, error) {
	endpoint := strings.TrimSpace(config.S3Endpoint)
	if endpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	bucket := strings.TrimSpace(config.S3Bucket)
	if bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	client, err := minio.New(parseEndpoint(endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(config.S3AccessKey, config.S3SecretKey, ""),
		Secure: config.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}

	base := strings.TrimSpace(config.PublicBaseURL)
	if base == "" {
		base = endpoint
	}

	return &S3{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
		client:        client,
		log:           log.With(zap.String("storage", "s3")),
	}, nil
}

func (s *S3) Save(ctx context.Context, key string, r io.Reader, contentType string) (Object, error) {
	key = cleanKey(key)
	if key == "" {
		return Object{}, errors.New("s3: object key is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return Object{}, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Object{}, fmt.Errorf("s3: put object: %w", err)
	}

	obj := Object{URL: fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key), Path: key}
	s.log.Info("S3 upload completed",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
	)
	return obj, nil
}

func (s *S3) Remove(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, cleanKey(path), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3: remove object %s: %w", path, err)
	}
	return nil
}

func (s *S3) ensureBucket(ctx context.Context) error {
	s.bucketInitOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.bucketInitErr = fmt.Errorf("s3: check bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			s.bucketInitErr = fmt.Errorf("s3: create bucket: %w", err)
			return
		}
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, s.bucket)
		if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
			s.bucketInitErr = fmt.Errorf("s3: set bucket policy: %w", err)
		}
	})
	return s.bucketInitErr
}

func parseEndpoint(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}

var _ FileStore = (*S3)(nil)
