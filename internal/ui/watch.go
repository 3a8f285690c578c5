package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// WatchFile reports changes to the file at path until ctx is done. The
// parent directory is watched because saves replace the file by renaming
// over it, and it is created when missing so a file that does not exist yet
// is still watched. Bursts of events collapse into a single pending
// notification.
func WatchFile(ctx context.Context, path string, logger *log.Logger) (<-chan struct{}, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	name := filepath.Clean(path)
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != name {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) && !evt.Has(fsnotify.Remove) {
					continue
				}
				logger.Debug("task file changed", "path", evt.Name, "op", evt.Op.String())
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watching task file", "err", err)
			}
		}
	}()
	return ch, nil
}
