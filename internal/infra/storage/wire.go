package storage

import (
	configs "go_tail_mock/internal/infra/config"

	"github.com/google/wire"
)

// StorageSet is a Wire provider set that includes all storage-related providers
var StorageSet = wire.NewSet(
	configs.NewRedisConfig,
	NewFileRuleStorage,
	NewRedisClient,
	NewPlaceholderCache,
)
