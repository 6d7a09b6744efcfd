package services

import (
	"context"
	"fmt"
)

// SetPlaceholder 设置占位符；启用 Redis 时先写入共享存储
func (e *MockEngine) SetPlaceholder(ctx context.Context, name, value string) error {
	if err := e.placeholderRepo.SavePlaceholder(ctx, name, value); err != nil {
		return fmt.Errorf("failed to set placeholder %s: %w", name, err)
	}
	e.placeholders.Set(name, value)
	return nil
}

// GetPlaceholder reads the local table. On a local miss with Redis enabled the
// shared store is consulted and a hit is cached locally.
func (e *MockEngine) GetPlaceholder(ctx context.Context, name string) (string, bool) {
	if value, ok := e.placeholders.Get(name); ok || !e.placeholderRepo.Enabled() {
		return value, ok
	}

	value, found, err := e.placeholderRepo.FindPlaceholder(ctx, name)
	if err != nil {
		e.logger.WithError(err).WithField("placeholder", name).Warn("shared placeholder lookup failed")
		return "", false
	}
	if !found {
		return "", false
	}
	e.placeholders.Set(name, value)
	return value, true
}

func (e *MockEngine) DeletePlaceholder(ctx context.Context, name string) error {
	if err := e.placeholderRepo.DeletePlaceholder(ctx, name); err != nil {
		return fmt.Errorf("failed to delete placeholder %s: %w", name, err)
	}
	e.placeholders.Delete(name)
	return nil
}

// Placeholders 返回本地占位符表的副本
func (e *MockEngine) Placeholders() map[string]string {
	return e.placeholders.Snapshot()
}

// SyncPlaceholders copies the shared placeholder values into the local table.
// Local values missing from the shared store are kept.
func (e *MockEngine) SyncPlaceholders(ctx context.Context) error {
	if !e.placeholderRepo.Enabled() {
		return nil
	}

	values, err := e.placeholderRepo.ListPlaceholders(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync placeholders: %w", err)
	}
	for name, value := range values {
		e.placeholders.Set(name, value)
	}

	e.logger.WithField("placeholders", len(values)).Debug("placeholders synced")
	return nil
}
