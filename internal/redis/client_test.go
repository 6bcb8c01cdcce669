package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a live Redis; set TASKMATE_TEST_REDIS=host:port to run them.
func newTestClient(t *testing.T) *RedisClient {
	t.Helper()

	addr := os.Getenv("TASKMATE_TEST_REDIS")
	if addr == "" {
		t.Skip("TASKMATE_TEST_REDIS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := NewRedisClient(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRevoke_RoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := c.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, c.Revoke(ctx, jti, time.Now().Add(time.Minute)))

	revoked, err = c.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := c.client.TTL(ctx, revokedKeyPrefix+jti).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRevoke_ExpiredTokenIsNoop(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	jti := uuid.NewString()

	require.NoError(t, c.Revoke(ctx, jti, time.Now().Add(-time.Second)))

	revoked, err := c.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
