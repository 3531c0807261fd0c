package tabsync

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/models"
)

const defaultDebounce = 50 * time.Millisecond

// FileWatcher publishes changes made to the SQLite local scope by any process.
// It watches the directory of the database file, because SQLite also writes
// the -wal and -journal siblings, and replays the change log from the last
// revision it has seen once notifications settle.
type FileWatcher struct {
	path     string
	log      store.ChangeLog
	notifier store.Notifier
	debounce time.Duration
	logger   *logger.Logger

	rev    int64
	values map[string]string
}

// NewFileWatcher returns a watcher of the database at path.
func NewFileWatcher(path string, log store.ChangeLog, notifier store.Notifier, debounce time.Duration, lg *logger.Logger) *FileWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &FileWatcher{
		path:     path,
		log:      log,
		notifier: notifier,
		debounce: debounce,
		logger:   lg,
		values:   make(map[string]string),
	}
}

// Run implements [workers.Worker]. Changes older than the moment Run starts
// are not replayed.
func (w *FileWatcher) Run(ctx context.Context) error {
	rev, err := w.log.CurrentRev(ctx)
	if err != nil {
		return fmt.Errorf("read current revision: %w", err)
	}
	w.rev = rev

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info().Str("func", "FileWatcher.Run").Str("path", w.path).Int64("rev", rev).Msg("watching local storage")

	base := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), base) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Str("func", "FileWatcher.Run").Msg("file watcher error")

		case <-timer.C:
			if err := w.Sync(ctx); err != nil {
				w.logger.Err(err).Str("func", "FileWatcher.Run").Msg("failed to replay storage changes")
			}
		}
	}
}

// Sync publishes every change recorded after the last seen revision.
func (w *FileWatcher) Sync(ctx context.Context) error {
	changes, err := w.log.ChangesSince(ctx, w.rev)
	if err != nil {
		return fmt.Errorf("read changes since %d: %w", w.rev, err)
	}

	for _, c := range changes {
		ev := models.StorageEvent{
			Key:      c.Key,
			OldValue: w.values[c.Key],
			Removed:  c.Deleted,
			Origin:   c.Origin,
		}
		if c.Deleted {
			delete(w.values, c.Key)
		} else {
			ev.NewValue = c.Value
			w.values[c.Key] = c.Value
		}
		if c.Rev > w.rev {
			w.rev = c.Rev
		}
		w.notifier.Publish(ev)
	}
	return nil
}
