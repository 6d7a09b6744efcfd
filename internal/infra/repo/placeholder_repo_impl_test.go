package repo

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/internal/infra/storage"
)

func TestPlaceholderRepoDisabled(t *testing.T) {
	ctx := context.Background()
	repo := NewPlaceholderRepoImpl(nil, &configs.RedisConfig{})

	assert.False(t, repo.Enabled())
	assert.NoError(t, repo.SavePlaceholder(ctx, "a", "1"))
	assert.NoError(t, repo.DeletePlaceholder(ctx, "a"))

	_, found, err := repo.FindPlaceholder(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	values, err := repo.ListPlaceholders(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestPlaceholderRepoRedis(t *testing.T) {
	ctx := context.Background()
	db := miniredis.RunT(t)
	port, err := strconv.Atoi(db.Port())
	require.NoError(t, err)

	cfg := &configs.RedisConfig{
		Enabled:           true,
		Host:              db.Host(),
		Port:              port,
		Key:               "test:placeholders",
		ConnectRetryCount: 2,
		ConnectRetryDelay: 10 * time.Millisecond,
	}
	client, cleanup, err := storage.NewRedisClient(cfg)
	require.NoError(t, err)
	defer cleanup()

	repo := NewPlaceholderRepoImpl(storage.NewPlaceholderCache(client, cfg), cfg)
	require.True(t, repo.Enabled())

	require.NoError(t, repo.SavePlaceholder(ctx, "username", "John Doe"))
	value, found, err := repo.FindPlaceholder(ctx, "username")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "John Doe", value)

	db.HSet(cfg.Key, "userId", "123")
	values, err := repo.ListPlaceholders(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"username": "John Doe", "userId": "123"}, values)

	require.NoError(t, repo.DeletePlaceholder(ctx, "username"))
	assert.Empty(t, db.HGet(cfg.Key, "username"))

	db.Close()
	err = repo.SavePlaceholder(ctx, "username", "Jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save placeholder")
}
