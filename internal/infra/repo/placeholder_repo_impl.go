package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"

	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/internal/infra/storage"
)

// placeholderRepoImpl 在 Redis 占位符存储上增加重试
type placeholderRepoImpl struct {
	cache      storage.PlaceholderCacheIface
	retryCount uint
	retryDelay time.Duration
}

var _ PlaceholderRepositoryIface = (*placeholderRepoImpl)(nil)

func NewPlaceholderRepoImpl(cache storage.PlaceholderCacheIface, config *configs.RedisConfig) PlaceholderRepositoryIface {
	retryCount := uint(config.ConnectRetryCount)
	if retryCount == 0 {
		retryCount = 1
	}
	return &placeholderRepoImpl{
		cache:      cache,
		retryCount: retryCount,
		retryDelay: config.ConnectRetryDelay,
	}
}

func (r *placeholderRepoImpl) Enabled() bool {
	return r.cache != nil
}

func (r *placeholderRepoImpl) SavePlaceholder(ctx context.Context, name, value string) error {
	if !r.Enabled() {
		return nil
	}
	err := r.do(ctx, func() error {
		return r.cache.SetPlaceholder(ctx, name, value)
	})
	if err != nil {
		return fmt.Errorf("failed to save placeholder: %w", err)
	}
	return nil
}

func (r *placeholderRepoImpl) DeletePlaceholder(ctx context.Context, name string) error {
	if !r.Enabled() {
		return nil
	}
	err := r.do(ctx, func() error {
		return r.cache.DeletePlaceholder(ctx, name)
	})
	if err != nil {
		return fmt.Errorf("failed to delete placeholder: %w", err)
	}
	return nil
}

func (r *placeholderRepoImpl) FindPlaceholder(ctx context.Context, name string) (string, bool, error) {
	if !r.Enabled() {
		return "", false, nil
	}

	var (
		value string
		found bool
	)
	err := r.do(ctx, func() error {
		var err error
		value, found, err = r.cache.GetPlaceholder(ctx, name)
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to find placeholder: %w", err)
	}
	return value, found, nil
}

func (r *placeholderRepoImpl) ListPlaceholders(ctx context.Context) (map[string]string, error) {
	if !r.Enabled() {
		return map[string]string{}, nil
	}

	var values map[string]string
	err := r.do(ctx, func() error {
		var err error
		values, err = r.cache.GetAllPlaceholders(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list placeholders: %w", err)
	}
	return values, nil
}

func (r *placeholderRepoImpl) do(ctx context.Context, fn retry.RetryableFunc) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(r.retryCount),
		retry.Delay(r.retryDelay),
		retry.LastErrorOnly(true),
	)
}
