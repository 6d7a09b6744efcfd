package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	model "go_tail_mock/internal/domain/model/mock_rule"
	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/internal/infra/storage"
	"go_tail_mock/utils"
)

// ruleRepoImpl 实现了 RuleRepositoryIface 接口 (ants pool 并发解析，保持发现顺序)
type ruleRepoImpl struct {
	fileStorage storage.RuleFileStorageIface
	config      *configs.RuleRepoConfig
	taskPool    *ants.Pool
}

// 确保 ruleRepoImpl 实现了 RuleRepositoryIface 接口 (编译时检查)
var _ RuleRepositoryIface = (*ruleRepoImpl)(nil)

// parseResult 单个规则文件的解析结果
type parseResult struct {
	rule *model.MockRule
	err  error
}

func NewRuleRepoImpl(fileStorage storage.RuleFileStorageIface, config *configs.RuleRepoConfig) (RuleRepositoryIface, func(), error) {
	size := config.LoadPoolSize
	if size <= 0 {
		size = 1
	}
	taskPool, err := ants.NewPool(size)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create ants pool: %w", err)
	}

	repo := &ruleRepoImpl{
		fileStorage: fileStorage,
		config:      config,
		taskPool:    taskPool,
	}
	return repo, taskPool.Release, nil
}

func (r *ruleRepoImpl) MocksDir() string {
	return r.config.MocksDir
}

func (r *ruleRepoImpl) RuleFileExt() string {
	if r.config.RuleFileExt == "" {
		return model.RuleFileExt
	}
	return r.config.RuleFileExt
}

func (r *ruleRepoImpl) LoadRules(ctx context.Context) ([]*model.MockRule, error) {
	return r.LoadRulesFromDir(ctx, r.config.MocksDir)
}

// LoadRulesFromDir parses every rule file of dir. Files are parsed in parallel
// but the returned rules keep the discovery order. When several files are
// invalid the error of the first one in that order is returned.
func (r *ruleRepoImpl) LoadRulesFromDir(ctx context.Context, dir string) ([]*model.MockRule, error) {
	log := utils.GetLogger().WithField("dir", dir)

	sources, err := r.fileStorage.ListRuleFiles(ctx, dir, r.RuleFileExt())
	if err != nil {
		return nil, err
	}

	results := make([]parseResult, len(sources))
	var wg sync.WaitGroup
	for i, source := range sources {
		i, source := i, source
		wg.Add(1)
		if err := r.taskPool.Submit(func() {
			defer wg.Done()
			results[i] = r.loadRule(ctx, source)
		}); err != nil {
			wg.Done()
			results[i] = parseResult{err: fmt.Errorf("failed to submit load task for %s: %w", source, err)}
		}
	}
	wg.Wait()

	rules := make([]*model.MockRule, 0, len(sources))
	for _, res := range results {
		if res.err != nil {
			log.WithError(res.err).Error("failed to load rules")
			return nil, res.err
		}
		rules = append(rules, res.rule)
	}

	log.WithField("rules", len(rules)).Debug("rules loaded")
	return rules, nil
}

func (r *ruleRepoImpl) loadRule(ctx context.Context, source string) parseResult {
	data, err := r.fileStorage.ReadRuleFile(ctx, source)
	if err != nil {
		return parseResult{err: err}
	}

	rule, err := model.ParseRule(source, data)
	if err != nil {
		return parseResult{err: err}
	}
	return parseResult{rule: rule}
}
