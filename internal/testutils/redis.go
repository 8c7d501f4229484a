// Package testutils provides utilities for testing, including Redis test helpers
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/simui-api/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing. The
// server is closed when the test ends.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()
	return CreateTestRedisClientWithData(t, nil)
}

// CreateTestRedisClientWithData creates an in-memory Redis client after
// letting setupFunc populate the server
func CreateTestRedisClientWithData(t *testing.T, setupFunc func(mr *miniredis.Miniredis)) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	if setupFunc != nil {
		setupFunc(mr)
	}

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}
