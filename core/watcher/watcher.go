package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/gohb/core/logger"
)

// FileWatcher calls OnChange once a burst of source changes under RootDir
// has been quiet for Debounce.
type FileWatcher struct {
	Watcher  *fsnotify.Watcher
	RootDir  string
	Exclude  []string
	Ext      string
	Debounce time.Duration
	OnChange func() error

	mu    sync.Mutex
	timer *time.Timer
}

func NewFileWatcher(rootDir string, exclude []string, debounce time.Duration, onChange func() error) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcher{
		Watcher:  w,
		RootDir:  rootDir,
		Exclude:  exclude,
		Ext:      ".go",
		Debounce: debounce,
		OnChange: onChange,
	}, nil
}

// Watch blocks until ctx is done or the watcher fails.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.RootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if fw.shouldExcludePath(event.Name) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					if err := fw.addWatchersRecursively(event.Name); err != nil {
						logger.Debug("Failed to watch new directory %s: %v", event.Name, err)
					}
					fw.debounce()
					continue
				}
			}

			if fw.relevant(event) {
				fw.debounce()
			}

		case err, ok := <-fw.Watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	// A removed or renamed directory has no extension and cannot be
	// stat'ed anymore, so any extension-less removal counts too.
	if filepath.Ext(event.Name) == fw.Ext {
		return true
	}
	return (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) && filepath.Ext(event.Name) == ""
}

func (fw *FileWatcher) debounce() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}

	fw.timer = time.AfterFunc(fw.Debounce, func() {
		logger.Debug("File changes detected, refreshing...")
		if err := fw.OnChange(); err != nil {
			logger.Error("Watcher.OnChange failed: %v", err)
		}
	})
}

func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()

	return fw.Watcher.Close()
}

func (fw *FileWatcher) shouldExcludePath(path string) bool {
	rel, err := filepath.Rel(fw.RootDir, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, ex := range fw.Exclude {
			if part == ex {
				return true
			}
		}
	}
	return false
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if fw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		if err := fw.Watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}
