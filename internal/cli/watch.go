package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchProfile calls onChange each time the profile at path is written,
// created or replaced by a rename. It runs until ctx is canceled.
//
// The parent directory is watched rather than the file, so the watch
// survives the profile being removed or swapped for a new inode.
func watchProfile(ctx context.Context, path string, onChange func()) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watch profile: %w", err)
	}
	target := filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	slog.Info("watching profile for changes", "path", path)

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
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				slog.Info("profile moved away, waiting for a replacement", "path", path)
				continue
			}
			// A rename onto the profile path arrives as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			slog.Info("profile changed", "path", path, "op", event.Op.String())
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("profile watcher error", "error", err)
		}
	}
}
