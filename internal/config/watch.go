package config

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the configuration file and invokes onChange with the freshly
// loaded configuration every time the file is written. Invalid or unreadable
// revisions are skipped so a half-saved file never clobbers a running server.
// Watch blocks until the context is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}

	// Editors replace rather than rewrite files, so debounce and re-add the
	// watch after each event burst.
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce.Reset(200 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("config watcher error: %w", err)
		case <-debounce.C:
			_ = watcher.Remove(path)
			if err := watcher.Add(path); err != nil {
				// The file may be mid-replace; retry until it reappears.
				debounce.Reset(200 * time.Millisecond)
				continue
			}
			cfg, err := LoadFrom(path)
			if err != nil {
				continue
			}
			if err := cfg.Validate(); err != nil {
				continue
			}
			onChange(cfg)
		}
	}
}
