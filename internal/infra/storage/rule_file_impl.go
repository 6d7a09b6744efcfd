package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type fileRuleStorageImpl struct{}

func NewFileRuleStorage() RuleFileStorageIface {
	return &fileRuleStorageImpl{}
}

var _ RuleFileStorageIface = (*fileRuleStorageImpl)(nil)

// ListRuleFiles lists rule files in dir sorted by file name. Sub directories are skipped.
func (s *fileRuleStorageImpl) ListRuleFiles(ctx context.Context, dir, ext string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mocks directory %s: %w", dir, err)
	}

	var sources []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		// 扩展名区分大小写
		if filepath.Ext(entry.Name()) != ext {
			continue
		}
		sources = append(sources, filepath.Join(dir, entry.Name()))
	}

	return sources, nil
}

func (s *fileRuleStorageImpl) ReadRuleFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}
	return data, nil
}
