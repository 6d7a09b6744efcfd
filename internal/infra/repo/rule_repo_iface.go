package repo

import (
	"context"

	model "go_tail_mock/internal/domain/model/mock_rule"
)

// RuleRepositoryIface 接口 - 规则目录加载
type RuleRepositoryIface interface {
	// LoadRules 加载配置目录下的全部规则，任一文件非法则整体失败
	LoadRules(ctx context.Context) ([]*model.MockRule, error)
	LoadRulesFromDir(ctx context.Context, dir string) ([]*model.MockRule, error)
	MocksDir() string
	RuleFileExt() string
}

// PlaceholderRepositoryIface 共享占位符仓库，未配置 Redis 时所有操作为空操作
type PlaceholderRepositoryIface interface {
	Enabled() bool
	SavePlaceholder(ctx context.Context, name, value string) error
	DeletePlaceholder(ctx context.Context, name string) error
	FindPlaceholder(ctx context.Context, name string) (string, bool, error)
	ListPlaceholders(ctx context.Context) (map[string]string, error)
}
