package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hydropump/hydropump/pkg/core"
)

// Watch observes a namespace directory and emits an event per document
// change until ctx is done. The channel is closed when the watch stops.
//
// Because writes land via an atomic rename, an update to an existing
// document surfaces as EventCreate on most platforms.
func (b *Backend) Watch(ctx context.Context, namespace string) (<-chan core.Event, error) {
	dir := filepath.Join(b.root, namespace)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create namespace directory: %w", core.ErrStorage, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create watcher: %w", core.ErrStorage, err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("%w: failed to watch %s: %w", core.ErrStorage, dir, err)
	}

	events := make(chan core.Event, 16)

	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(ev.Name)
				if filepath.Ext(name) != b.ext || strings.HasPrefix(name, TempFilePrefix) {
					continue
				}

				var typ core.EventType
				switch {
				case ev.Op.Has(fsnotify.Create):
					typ = core.EventCreate
				case ev.Op.Has(fsnotify.Write):
					typ = core.EventModify
				case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
					typ = core.EventDelete
				default:
					continue
				}

				out := core.Event{
					Type:      typ,
					Namespace: namespace,
					ID:        strings.TrimSuffix(name, b.ext),
					Timestamp: time.Now().Unix(),
				}
				select {
				case events <- out:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if b.logger != nil {
					b.logger.Warn("watch error", "namespace", namespace, "error", err)
				}
			}
		}
	}()

	return events, nil
}
