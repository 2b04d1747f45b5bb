package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/config"
)

func TestNewRedisConnection(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)

	conn, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + server.Addr(), DB: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	assert.True(t, conn.HealthCheck())
	require.NoError(t, conn.Client().Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, server.DB(2).Exists("k"), "DB override is applied")

	server.Close()
	assert.False(t, conn.HealthCheck())
}

func TestNewRedisConnection_Errors(t *testing.T) {
	_, err := NewRedisConnection(&config.RedisConfig{URL: "not-a-url"})
	assert.Error(t, err)

	server, err := miniredis.Run()
	require.NoError(t, err)
	addr := server.Addr()
	server.Close()

	_, err = NewRedisConnection(&config.RedisConfig{URL: "redis://" + addr})
	assert.Error(t, err)
}
