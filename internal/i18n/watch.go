package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/indblik/site/internal/logging"
)

// Watch reloads the catalogs from dir whenever a .json file in it changes.
// onReload, if non-nil, is called after every attempt. Watch returns once the
// watcher is running; it stops when ctx is done.
func (c *Catalog) Watch(ctx context.Context, dir string, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := logging.Get()
	fsys := os.DirFS(dir)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Ext(ev.Name), ".json") {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}

				err := c.Reload(fsys)
				if err != nil {
					logger.Error("catalog reload failed", slog.String("file", ev.Name), slog.Any("error", err))
				} else {
					logger.Info("catalogs reloaded", slog.String("file", ev.Name))
				}
				if onReload != nil {
					onReload(err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", slog.Any("error", err))
			}
		}
	}()

	return nil
}
