package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch reloads the settings file at path whenever it changes and hands the
// result to onChange. The directory is watched rather than the file so that
// editors which save by renaming are picked up. A file that fails to parse
// is ignored until the next change. Call stop to end the watch.
func Watch(path string, onChange func(*Config)) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		debounce := time.NewTimer(watchDebounce)
		debounce.Stop()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					debounce.Reset(watchDebounce)
				}

			case <-debounce.C:
				if cfg, err := LoadFile(path); err == nil {
					onChange(cfg)
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
