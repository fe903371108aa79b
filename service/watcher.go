package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RuleWatcher reloads the rule registry when YAML files under the rule
// directory change. Changes are debounced so a burst of writes triggers one
// reload.
type RuleWatcher struct {
	dir      string
	debounce time.Duration
	reload   func() error
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   bool
}

// NewRuleWatcher creates a watcher over dir. reload is invoked after the
// debounce window closes.
func NewRuleWatcher(dir string, reload func() error, logger *slog.Logger) (*RuleWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleWatcher{
		dir:      dir,
		debounce: 250 * time.Millisecond,
		reload:   reload,
		watcher:  fsw,
		logger:   logger,
	}, nil
}

// Start begins watching the rule directory for changes.
func (w *RuleWatcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.dir); err != nil {
		return err
	}
	go w.processEvents(ctx)
	w.logger.Info("Rule watcher started", slog.String("dir", w.dir))
	return nil
}

// Stop stops the watcher.
func (w *RuleWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *RuleWatcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return nil
	})
}

func (w *RuleWatcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *RuleWatcher) handleFSEvent(event fsnotify.Event) {
	// New subdirectories need their own watch.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory",
					slog.String("path", event.Name),
					slog.String("error", err.Error()))
			}
			return
		}
	}

	ext := filepath.Ext(event.Name)
	if ext != ".yaml" && ext != ".yml" {
		return
	}

	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
	w.logger.Debug("Rule file change detected",
		slog.String("path", event.Name),
		slog.String("op", event.Op.String()))
}

func (w *RuleWatcher) flushPending() {
	w.pendingMu.Lock()
	dirty := w.pending
	w.pending = false
	w.pendingMu.Unlock()
	if !dirty {
		return
	}

	if err := w.reload(); err != nil {
		// Keep the previous registry active; the next change retries.
		w.logger.Error("Rule reload failed", slog.String("error", err.Error()))
		return
	}
	w.logger.Info("Rules reloaded")
}
