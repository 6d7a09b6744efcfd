package repo

import (
	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/internal/infra/storage"

	"github.com/google/wire"
)

var Reposet = wire.NewSet(
	configs.NewRuleRepoConfig,
	storage.StorageSet,
	NewRuleRepoImpl,
	NewPlaceholderRepoImpl,
)
