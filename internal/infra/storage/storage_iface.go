package storage

import (
	"context"
)

// RuleFileStorageIface 规则文件读取接口
type RuleFileStorageIface interface {
	// ListRuleFiles 返回 dir 下扩展名为 ext 的规则文件路径，按发现顺序排列，不递归子目录
	ListRuleFiles(ctx context.Context, dir, ext string) ([]string, error)
	ReadRuleFile(ctx context.Context, path string) ([]byte, error)
}

// PlaceholderCacheIface 定义共享占位符存储操作接口
type PlaceholderCacheIface interface {
	SetPlaceholder(ctx context.Context, name, value string) error
	GetPlaceholder(ctx context.Context, name string) (string, bool, error)
	DeletePlaceholder(ctx context.Context, name string) error
	GetAllPlaceholders(ctx context.Context) (map[string]string, error)
}
