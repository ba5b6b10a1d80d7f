package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/types"
)

// DefaultWatchDebounce collapses editor save bursts into one reload.
const DefaultWatchDebounce = 500 * time.Millisecond

// WatchFile calls onChange (debounced) whenever path is written or re-created.
// It blocks until ctx is done or the watcher fails to start.
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func(), logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so a delete-and-recreate save is still seen.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if ctx.Err() != nil {
					return
				}
				if _, err := os.Stat(path); err != nil {
					logger.Warn("watched file disappeared", zap.String("path", path))
					return
				}
				onChange()
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

// ComplianceWatcher keeps a ComplianceView pointed at the artifact selected in console.yml.
// Editing the selection supersedes the in-flight request with a new one.
type ComplianceWatcher struct {
	store    ConfigStore
	view     *ComplianceView
	getenv   func(string) string
	debounce time.Duration
	ui       UICallback
	logger   *zap.Logger

	mu      sync.Mutex // serializes reloads
	current types.ArtifactRef
	closed  bool
}

// NewComplianceWatcher creates a watcher driving view from store.
func NewComplianceWatcher(store ConfigStore, view *ComplianceView, ui UICallback, logger *zap.Logger) *ComplianceWatcher {
	if ui == nil {
		ui = &SilentUICallback{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplianceWatcher{
		store:    store,
		view:     view,
		getenv:   os.Getenv,
		debounce: DefaultWatchDebounce,
		ui:       ui,
		logger:   logger,
	}
}

// Run loads the selected artifact and follows config edits until ctx is done.
func (w *ComplianceWatcher) Run(ctx context.Context) error {
	cfg, err := LoadConfig(w.store, w.getenv)
	if err != nil {
		return err
	}
	ref, ok := SelectedArtifact(cfg)
	if !ok {
		return fmt.Errorf("no artifact configured (add one with 'apim-gov artifact add <id>')")
	}
	w.mu.Lock()
	w.current = ref
	w.view.Load(ctx, ref)
	w.mu.Unlock()

	err = WatchFile(ctx, w.store.Path(), w.debounce, func() { w.reload(ctx) }, w.logger)

	// A debounce timer may still fire after WatchFile returns.
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.view.Close()
	return err
}

// reload re-reads the config and switches the view when the selection changed.
func (w *ComplianceWatcher) reload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	cfg, err := LoadConfig(w.store, w.getenv)
	if err != nil {
		w.ui.ShowWarning("Config Reload Failed", err.Error())
		return
	}
	ref, ok := SelectedArtifact(cfg)
	if !ok || ref == w.current {
		return
	}
	w.logger.Info("selected artifact changed",
		zap.String("from", w.current.ID),
		zap.String("to", ref.ID))
	w.current = ref
	w.view.Load(ctx, ref)
}
