package iface

import (
	"context"

	model "go_tail_mock/internal/domain/model/mock_rule"
)

type RuleMatchService interface {
	// Match 匹配规则并返回当前响应，游标随之前进
	Match(ctx context.Context, req model.RequestInfo) (*model.MatchResult, error)
	// RenderBody 返回替换占位符之后的响应体
	RenderBody(variant *model.ResponseVariant) []byte
}

// RuleManageService 规则管理服务接口
type RuleManageService interface {
	Reload(ctx context.Context) error
	Rules() []model.RuleSummary
}

type PlaceholderService interface {
	SetPlaceholder(ctx context.Context, name, value string) error
	GetPlaceholder(ctx context.Context, name string) (string, bool)
	DeletePlaceholder(ctx context.Context, name string) error
	// SyncPlaceholders 从共享存储拉取占位符
	SyncPlaceholders(ctx context.Context) error
}
