package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOOptions describes how to reach an S3-compatible endpoint.
type MinIOOptions struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
	Bucket          string
}

// MinIOStore stores objects in a MinIO (or any S3-compatible) bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore connects to MinIO and creates the bucket if it is missing.
func NewMinIOStore(ctx context.Context, opts MinIOOptions) (*MinIOStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
		slog.Info("created bucket", "bucket", opts.Bucket)
	}

	return &MinIOStore{client: client, bucket: opts.Bucket}, nil
}

func (s *MinIOStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	ctx, span := tracer.Start(ctx, "MinIOStore.Put")
	defer span.End()

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("put minio object %s: %w", key, err)
	}

	return nil
}

func (s *MinIOStore) Get(ctx context.Context, key string) (Object, error) {
	ctx, span := tracer.Start(ctx, "MinIOStore.Get")
	defer span.End()

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		span.RecordError(err)
		return Object{}, fmt.Errorf("get minio object %s: %w", key, err)
	}
	defer func() {
		if err := obj.Close(); err != nil {
			slog.Error("failed to close minio object", "key", key, "error", err)
		}
	}()

	// GetObject is lazy; Stat surfaces a missing key.
	info, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return Object{}, ErrNotFound
		}
		span.RecordError(err)
		return Object{}, fmt.Errorf("stat minio object %s: %w", key, err)
	}

	body, err := io.ReadAll(obj)
	if err != nil {
		span.RecordError(err)
		return Object{}, fmt.Errorf("read minio object %s: %w", key, err)
	}

	return Object{Key: key, ContentType: info.ContentType, Body: body}, nil
}

func (s *MinIOStore) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "MinIOStore.List")
	defer span.End()

	keys := []string{}
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			span.RecordError(object.Err)
			return nil, fmt.Errorf("list minio objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}

	slices.Sort(keys)
	return keys, nil
}

// Close is a no-op; the MinIO client holds no resources that need releasing.
func (s *MinIOStore) Close() error {
	return nil
}
