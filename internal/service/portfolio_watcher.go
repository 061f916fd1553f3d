package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// PortfolioWatcher invalidates a PortfolioService whenever the portfolio
// file changes on disk. It watches the parent directory because atomic
// writers replace the file instead of modifying it.
type PortfolioWatcher struct {
	svc     PortfolioService
	path    string
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// onInvalidate is called after each invalidation (tests hook it).
	onInvalidate func()
}

// NewPortfolioWatcher creates a watcher for the file at path.
func NewPortfolioWatcher(svc PortfolioService, path string) (*PortfolioWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("portfolio watcher: %w", err)
	}
	return &PortfolioWatcher{
		svc:     svc,
		path:    filepath.Clean(path),
		watcher: w,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (pw *PortfolioWatcher) Start(ctx context.Context) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.running {
		return nil
	}

	dir := filepath.Dir(pw.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("portfolio watcher: mkdir %s: %w", dir, err)
	}
	if err := pw.watcher.Add(dir); err != nil {
		return fmt.Errorf("portfolio watcher: watch %s: %w", dir, err)
	}

	pw.running = true
	go pw.run(ctx)
	slog.Info("watching portfolio file", "path", pw.path)
	return nil
}

// Stop ends the watch loop and releases the fsnotify handle. It is safe to
// call more than once and without a prior Start.
func (pw *PortfolioWatcher) Stop() {
	pw.mu.Lock()
	running := pw.running
	pw.running = false
	pw.mu.Unlock()

	if running {
		close(pw.stopCh)
		<-pw.doneCh
	}
	if err := pw.watcher.Close(); err != nil {
		slog.Warn("portfolio watcher close failed", "error", err)
	}
}

func (pw *PortfolioWatcher) run(ctx context.Context) {
	defer close(pw.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-pw.stopCh:
			return
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			pw.handle(event)
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("portfolio watcher error", "error", err)
		}
	}
}

func (pw *PortfolioWatcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != pw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	pw.svc.Invalidate()
	slog.Debug("portfolio cache invalidated", "op", event.Op.String())
	if pw.onInvalidate != nil {
		pw.onInvalidate()
	}
}
