package reaction

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 150 * time.Millisecond

// Update is delivered by Watch whenever the catalogue file changes.
type Update struct {
	Snapshot Snapshot
	Err      error
}

// Watch reloads the catalogue at path whenever it changes on disk and
// delivers each result on the returned channel. The channel is closed when
// ctx is cancelled. The directory is watched rather than the file so that
// atomic-rename saves are picked up.
func Watch(ctx context.Context, path string) (<-chan Update, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	out := make(chan Update)
	go func() {
		defer close(out)
		defer w.Close()

		target := filepath.Clean(path)
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					pending = time.After(reloadDebounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("reaction watcher: %v", err)
			case <-pending:
				pending = nil
				snap, err := LoadCatalog(path)
				select {
				case out <- Update{Snapshot: snap, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
