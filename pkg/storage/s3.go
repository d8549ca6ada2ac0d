package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

// s3 stores objects in an S3-compatible service.
type s3 struct {
	addresses
	client  *minio.Client
	region  string
	buckets []string
	logger  *slog.Logger
}

func newS3(cfg *Config, logger *slog.Logger) (*s3, error) {
	client, err := minio.New(cfg.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		Secure: cfg.S3.UseSSL,
		Region: cfg.S3.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	buckets := make([]string, 0, len(cfg.Buckets))
	for _, b := range cfg.Buckets {
		buckets = append(buckets, b)
	}

	return &s3{
		addresses: addresses{base: strings.TrimSuffix(cfg.PublicURL, "/")},
		client:    client,
		region:    cfg.S3.Region,
		buckets:   buckets,
		logger:    logger.With("system", "storage", "backend", "s3"),
	}, nil
}

func (s *s3) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting storage system", "endpoint", s.client.EndpointURL().Host)

	lc.OnStartup(func() {
		ctx := lc.Context()
		for _, bucket := range s.buckets {
			if err := s.ensureBucket(ctx, bucket); err != nil {
				s.logger.Error("bucket provisioning failed", "bucket", bucket, "error", err)
				continue
			}
		}
		s.logger.Info("storage buckets initialized", "buckets", len(s.buckets))
	})

	return nil
}

func (s *s3) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("make bucket: %w", err)
	}

	if err := s.client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}

	s.logger.Info("bucket created", "bucket", bucket)
	return nil
}

func (s *s3) Upload(ctx context.Context, bucket, name string, data []byte, opts UploadOptions) (string, error) {
	key, err := cleanKey(bucket, name)
	if err != nil {
		return "", err
	}

	if !opts.Overwrite {
		_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
		if err == nil {
			return "", ErrExists
		}
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return "", mapS3Error(err)
		}
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	info, err := s.client.PutObject(
		ctx,
		bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", mapS3Error(err)
	}

	return info.Key, nil
}

func (s *s3) Delete(ctx context.Context, bucket string, paths ...string) error {
	objects := make(chan minio.ObjectInfo, len(paths))
	var errs []error

	for _, p := range paths {
		key, err := cleanKey(bucket, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		objects <- minio.ObjectInfo{Key: key}
	}
	close(objects)

	for rmErr := range s.client.RemoveObjects(ctx, bucket, objects, minio.RemoveObjectsOptions{}) {
		if minio.ToErrorResponse(rmErr.Err).Code == "NoSuchKey" {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w", rmErr.ObjectName, mapS3Error(rmErr.Err)))
	}

	return errors.Join(errs...)
}

func mapS3Error(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "AccessDenied":
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case "InvalidObjectName", "InvalidBucketName", "NoSuchBucket":
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	default:
		return err
	}
}
