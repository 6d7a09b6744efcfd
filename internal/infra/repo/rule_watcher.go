package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"go_tail_mock/utils"
)

// defaultWatchDebounce 合并编辑器保存时产生的连续事件
const defaultWatchDebounce = 100 * time.Millisecond

// RuleWatcher 监听规则目录，规则文件变化时回调 onChange
type RuleWatcher struct {
	dir      string
	ext      string
	debounce time.Duration
	w        *fsnotify.Watcher
}

func NewRuleWatcher(dir, ext string) (*RuleWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate file watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch mocks directory %s: %w", dir, err)
	}

	return &RuleWatcher{dir: dir, ext: ext, debounce: defaultWatchDebounce, w: fsw}, nil
}

// Run blocks until ctx is done or the watcher is closed. onChange runs on the
// watcher goroutine, once per burst of rule file events.
func (rw *RuleWatcher) Run(ctx context.Context, onChange func()) error {
	log := utils.GetLogger().WithField("dir", rw.dir)
	log.Debug("Watching rule files for changes")

	timer := time.NewTimer(rw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return rw.w.Close()
		case evt, ok := <-rw.w.Events:
			if !ok {
				log.Debug("Watcher events channel closed")
				return nil
			}
			if !rw.relevant(evt) {
				continue
			}

			log.WithFields(map[string]interface{}{
				"event": evt.Op.String(),
				"file":  evt.Name,
			}).Debug("Rule update event received")
			timer.Reset(rw.debounce)
		case <-timer.C:
			onChange()
		case err, ok := <-rw.w.Errors:
			if !ok {
				log.Debug("Watcher error channel closed")
				return nil
			}
			log.WithError(err).Warn("Watcher error received")
		}
	}
}

func (rw *RuleWatcher) Close() error {
	return rw.w.Close()
}

func (rw *RuleWatcher) relevant(evt fsnotify.Event) bool {
	if filepath.Ext(evt.Name) != rw.ext {
		return false
	}
	return evt.Has(fsnotify.Create) || evt.Has(fsnotify.Write) ||
		evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename)
}
