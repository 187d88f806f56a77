//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestRedis(t *testing.T) *RedisCache {
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
	require.NoError(t, err)

	t.Cleanup(func() {
		redisC.Terminate(ctx)
	})

	host, err := redisC.Host(ctx)
	require.NoError(t, err)

	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := Open(ctx, host+":"+port.Port(), "", 0)
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
	})

	return NewRedisCache(client)
}

func TestRedisCache_GetSet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	c := setupTestRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "geo:v1:reverse:missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "geo:v1:reverse:abc", []byte(`[{"Name":"Bandra"}]`), time.Minute))

	got, err := c.Get(ctx, "geo:v1:reverse:abc")
	require.NoError(t, err)
	assert.Equal(t, `[{"Name":"Bandra"}]`, string(got))
}

func TestOpen_EmptyAddrDisablesCache(t *testing.T) {
	client, err := Open(context.Background(), "", "", 0)
	assert.NoError(t, err)
	assert.Nil(t, client)
}
