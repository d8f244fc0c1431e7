package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	pubsection "github.com/alnah/go-pubsection"
)

// ErrWatch is returned when the data file cannot be watched.
var ErrWatch = errors.New("failed to watch data file")

// runWatch updates once, then again after each change to the data file,
// until ctx is canceled. Update failures are logged and watching continues.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a new file and renaming it over the old one are seen.
func runWatch(ctx context.Context, svc *pubsection.Service, req pubsection.UpdateRequest, logger *slog.Logger, out output, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer func() { _ = watcher.Close() }()

	dataPath := filepath.Clean(req.DataPath)
	dir := filepath.Dir(dataPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWatch, dir, err)
	}
	logger.Info("watching for changes", "data", dataPath, "document", req.DocumentPath)

	update := func() {
		if err := runUpdate(ctx, svc, req, out); err != nil && ctx.Err() == nil {
			logger.Error("update failed", "error", err)
		}
	}
	update()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch stopped")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDataChange(ev, dataPath) {
				continue
			}
			logger.Debug("data file changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			update()
		}
	}
}

// isDataChange reports whether ev writes or replaces the data file.
func isDataChange(ev fsnotify.Event, dataPath string) bool {
	if filepath.Clean(ev.Name) != dataPath {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
