package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/go-redis/redis/v8"

	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/utils"
)

type redisPlaceholderCacheImpl struct {
	redisClient *redis.Client
	key         string // Redis hash key
}

// NewRedisClient 创建 Redis 客户端，连接失败时按配置重试
// 未启用 Redis 时返回 nil
func NewRedisClient(c *configs.RedisConfig) (*redis.Client, func(), error) {
	if !c.Enabled {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        c.Addr(),
		Password:    c.Password,
		DB:          c.Database,
		DialTimeout: c.DialTimeout,
	})

	// Attempts(0) 在 retry-go 中表示无限重试
	attempts := uint(c.ConnectRetryCount)
	if attempts == 0 {
		attempts = 1
	}

	// 测试连接是否成功
	err := retry.Do(
		func() error {
			return client.Ping(context.Background()).Err()
		},
		retry.Attempts(attempts),
		retry.Delay(c.ConnectRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis %s: %w", c.Addr(), err)
	}

	utils.GetLogger().WithField("addr", c.Addr()).Info("Successfully connected to Redis")

	cleanup := func() {
		if err := client.Close(); err != nil {
			utils.GetLogger().WithError(err).Warn("failed to close redis client")
		}
	}
	return client, cleanup, nil
}

// NewPlaceholderCache 返回基于 Redis hash 的占位符存储；redisClient 为 nil 时返回 nil
func NewPlaceholderCache(redisClient *redis.Client, c *configs.RedisConfig) PlaceholderCacheIface {
	if redisClient == nil {
		return nil
	}
	return &redisPlaceholderCacheImpl{
		redisClient: redisClient,
		key:         c.Key,
	}
}

var _ PlaceholderCacheIface = (*redisPlaceholderCacheImpl)(nil)

func (r *redisPlaceholderCacheImpl) SetPlaceholder(ctx context.Context, name, value string) error {
	if err := r.redisClient.HSet(ctx, r.key, name, value).Err(); err != nil {
		return fmt.Errorf("failed to set placeholder %s to redis: %w", name, err)
	}
	return nil
}

func (r *redisPlaceholderCacheImpl) GetPlaceholder(ctx context.Context, name string) (string, bool, error) {
	value, err := r.redisClient.HGet(ctx, r.key, name).Result()
	if errors.Is(err, redis.Nil) { // Redis 中 field 不存在
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("failed to get placeholder %s from redis: %w", name, err)
	}
	return value, true, nil
}

func (r *redisPlaceholderCacheImpl) DeletePlaceholder(ctx context.Context, name string) error {
	if err := r.redisClient.HDel(ctx, r.key, name).Err(); err != nil {
		return fmt.Errorf("failed to delete placeholder %s from redis: %w", name, err)
	}
	return nil
}

func (r *redisPlaceholderCacheImpl) GetAllPlaceholders(ctx context.Context) (map[string]string, error) {
	values, err := r.redisClient.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list placeholders from redis: %w", err)
	}
	return values, nil
}
