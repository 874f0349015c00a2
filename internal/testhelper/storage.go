package testhelper

import (
	"context"
	"testing"

	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/bosserz/ged-assessment/internal/workers"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewSQLiteStore creates a new in-memory SQLite object store for testing.
func NewSQLiteStore(t *testing.T) *storage.SQLStore {
	t.Helper()

	store, err := storage.OpenSQLStore(context.Background(), storage.DriverSQLite, "file:ged?mode=memory&cache=private")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	t.Cleanup(func() {
		// must wait the workers to finish
		workers.Global.Wait()

		if err := store.Close(); err != nil {
			t.Fatalf("Failed to close store: %v", err)
		}
	})

	return store
}

const (
	minioAccessKey = "minioadmin"
	minioSecretKey = "minioadmin"
)

func NewMinIOStore(t *testing.T, bucket string) *storage.MinIOStore {
	t.Helper()

	container := NewMinIOContainer(t)

	endpoint, err := container.PortEndpoint(context.Background(), nat.Port("9000/tcp"), "")
	if err != nil {
		t.Skipf("failed to get MinIO container endpoint: %v", err)
	}

	store, err := storage.NewMinIOStore(context.Background(), storage.MinIOOptions{
		Endpoint:        endpoint,
		AccessKeyID:     minioAccessKey,
		SecretAccessKey: minioSecretKey,
		Bucket:          bucket,
	})
	if err != nil {
		t.Skipf("failed to create MinIO store: %v", err)
	}

	return store
}

func NewMinIOContainer(t *testing.T) testcontainers.Container {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Cmd:          []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     minioAccessKey,
			"MINIO_ROOT_PASSWORD": minioSecretKey,
		},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}
	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("failed to create MinIO container: %v", err)
	}

	t.Cleanup(func() {
		minioC.Terminate(context.Background())
	})

	return minioC
}
