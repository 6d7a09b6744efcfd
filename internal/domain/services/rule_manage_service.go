package services

import (
	"context"
	"fmt"

	model "go_tail_mock/internal/domain/model/mock_rule"
	"go_tail_mock/internal/infra/repo"
)

const reloadKey = "reload_rules"

// Load 加载规则目录并替换当前规则；失败时保留原有规则
func (e *MockEngine) Load(ctx context.Context) error {
	rules, err := e.ruleRepo.LoadRules(ctx)
	e.metrics.ObserveLoad(len(rules), err)
	if err != nil {
		return fmt.Errorf("failed to load rules from %s: %w", e.ruleRepo.MocksDir(), err)
	}

	e.store.Store(model.NewRuleStore(rules))
	e.logger.WithFields(map[string]interface{}{
		"dir":   e.ruleRepo.MocksDir(),
		"rules": len(rules),
	}).Info("mock rules loaded")
	return nil
}

// Reload swaps in a freshly loaded rule set, which restarts every sequence
// from its first variant. Concurrent calls share a single load.
func (e *MockEngine) Reload(ctx context.Context) error {
	_, err, _ := e.sfGroup.Do(reloadKey, func() (interface{}, error) {
		return nil, e.Load(ctx)
	})
	if err != nil {
		e.logger.WithError(err).Warn("reload failed, keeping previous rules")
	}
	return err
}

// Watch reloads the rules whenever a rule file of the mocks directory changes.
// It blocks until ctx is done.
func (e *MockEngine) Watch(ctx context.Context) error {
	rw, err := repo.NewRuleWatcher(e.ruleRepo.MocksDir(), e.ruleRepo.RuleFileExt())
	if err != nil {
		return err
	}

	return rw.Run(ctx, func() {
		_ = e.Reload(ctx)
	})
}

// Rules 返回当前规则的摘要，按匹配顺序排列
func (e *MockEngine) Rules() []model.RuleSummary {
	return e.store.Load().Summaries()
}
