package testhelper

import (
	"context"
	"testing"

	"github.com/bosserz/ged-assessment/internal/config"
	"github.com/bosserz/ged-assessment/internal/deps"
	"github.com/docker/go-connections/nat"
	"github.com/redis/rueidis"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewRedisContainer starts a throwaway Redis. The test is skipped when
// Docker is unavailable.
func NewRedisContainer(t *testing.T) testcontainers.Container {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("failed to create Redis container: %v", err)
	}

	t.Cleanup(func() {
		redisC.Terminate(context.Background())
	})

	return redisC
}

// NewRedisClient connects to the container the same way ged-server does.
func NewRedisClient(t *testing.T, container testcontainers.Container) rueidis.Client {
	t.Helper()

	ctx := context.Background()

	host, err := container.Host(ctx)
	if err != nil {
		t.Skipf("failed to get Redis container host: %v", err)
	}

	port, err := container.MappedPort(ctx, nat.Port("6379/tcp"))
	if err != nil {
		t.Skipf("failed to get Redis container port: %v", err)
	}

	redisClient, err := deps.RedisClient(config.RedisConfig{
		Host: host,
		Port: port.Int(),
	})
	if err != nil {
		t.Skipf("failed to create Redis client: %v", err)
	}

	t.Cleanup(func() {
		redisClient.Close()
	})

	return redisClient
}
