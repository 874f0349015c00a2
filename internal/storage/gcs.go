package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStore stores objects in a Google Cloud Storage bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore connects to Cloud Storage. With empty credentialsJSON the
// application default credentials are used.
func NewGCSStore(ctx context.Context, bucket string, credentialsJSON string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	ctx, span := tracer.Start(ctx, "GCSStore.Put")
	defer span.End()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		span.RecordError(err)
		return fmt.Errorf("write gcs object %s: %w", key, err)
	}

	if err := w.Close(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("finalize gcs object %s: %w", key, err)
	}

	return nil
}

func (s *GCSStore) Get(ctx context.Context, key string) (Object, error) {
	ctx, span := tracer.Start(ctx, "GCSStore.Get")
	defer span.End()

	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return Object{}, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return Object{}, fmt.Errorf("open gcs object %s: %w", key, err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			slog.Error("failed to close gcs reader", "key", key, "error", err)
		}
	}()

	body, err := io.ReadAll(r)
	if err != nil {
		span.RecordError(err)
		return Object{}, fmt.Errorf("read gcs object %s: %w", key, err)
	}

	return Object{Key: key, ContentType: r.Attrs.ContentType, Body: body}, nil
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "GCSStore.List")
	defer span.End()

	keys := []string{}
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("list gcs objects: %w", err)
		}
		keys = append(keys, attrs.Name)
	}

	slices.Sort(keys)
	return keys, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
