package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher 监听磁盘上的场景配置文件，变化后重新加载
//
// 仅用于 --config + --watch 调参模式。重新加载的结果放入待取槽位，
// 由游戏主循环在 Update 中通过 Poll 取走，保证场景状态只在主循环中被修改。
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending *SceneConfig

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher 开始监听 path 所在目录（编辑器通常以"写临时文件+重命名"方式保存）
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()

	log.Printf("[ConfigWatcher] Watching %s", w.path)
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Warning: watch error: %v", err)
		}
	}
}

// reload 重新读取配置；解析失败时保留旧配置
func (w *Watcher) reload() {
	cfg, err := LoadSceneConfig(w.path)
	if err != nil {
		log.Printf("[ConfigWatcher] Warning: reload failed, keeping previous config: %v", err)
		return
	}
	w.mu.Lock()
	w.pending = cfg
	w.mu.Unlock()
	log.Printf("[ConfigWatcher] Reloaded %s", w.path)
}

// Poll 取走最近一次成功加载的配置；没有新配置时返回 nil
func (w *Watcher) Poll() *SceneConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	cfg := w.pending
	w.pending = nil
	return cfg
}

// Close 停止监听
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
