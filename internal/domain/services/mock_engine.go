package services

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"go_tail_mock/internal/domain/iface"
	model "go_tail_mock/internal/domain/model/mock_rule"
	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/internal/infra/metrics"
	"go_tail_mock/internal/infra/repo"
	"go_tail_mock/internal/infra/storage"
	"go_tail_mock/utils"
)

// MockEngine answers requests from the rules of one mocks directory.
// It is safe for concurrent use.
type MockEngine struct {
	ruleRepo        repo.RuleRepositoryIface
	placeholderRepo repo.PlaceholderRepositoryIface
	placeholders    *model.PlaceholderTable
	metrics         *metrics.EngineMetrics
	logger          *logrus.Logger

	store   atomic.Pointer[model.RuleStore]
	sfGroup singleflight.Group
	closers []func()
}

var (
	_ iface.RuleMatchService   = (*MockEngine)(nil)
	_ iface.RuleManageService  = (*MockEngine)(nil)
	_ iface.PlaceholderService = (*MockEngine)(nil)
)

// NewMockEngine 创建引擎，规则需调用 Load 加载
func NewMockEngine(
	ruleRepo repo.RuleRepositoryIface,
	placeholderRepo repo.PlaceholderRepositoryIface,
	cfg *configs.EngineConfig,
	engineMetrics *metrics.EngineMetrics,
	logger *logrus.Logger,
) *MockEngine {
	e := &MockEngine{
		ruleRepo:        ruleRepo,
		placeholderRepo: placeholderRepo,
		placeholders:    model.NewPlaceholderTable(cfg.Placeholders),
		metrics:         engineMetrics,
		logger:          utils.LoggerOrDefault(logger),
	}
	e.store.Store(model.NewRuleStore(nil))
	return e
}

// NewMockEngineFromDir builds an engine for dir with default settings and
// loads it. Any invalid rule file fails the whole call.
func NewMockEngineFromDir(ctx context.Context, dir string) (*MockEngine, error) {
	cfg := configs.NewEngineConfig(dir)

	ruleRepo, cleanup, err := repo.NewRuleRepoImpl(storage.NewFileRuleStorage(), configs.NewRuleRepoConfig(cfg))
	if err != nil {
		return nil, err
	}

	e := NewMockEngine(ruleRepo, repo.NewPlaceholderRepoImpl(nil, &cfg.Redis), cfg, nil, utils.GetLogger())
	e.closers = append(e.closers, cleanup)

	if err := e.Load(ctx); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// Close releases resources owned by an engine built with NewMockEngineFromDir.
func (e *MockEngine) Close() {
	for _, closer := range e.closers {
		closer()
	}
	e.closers = nil
}

func (e *MockEngine) MocksDir() string {
	return e.ruleRepo.MocksDir()
}
