package tabsync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/mock"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/models"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.StorageEvent
}

func (r *recordingNotifier) Publish(ev models.StorageEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingNotifier) Events() []models.StorageEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.StorageEvent(nil), r.events...)
}

// ── Sync ────────────────────────────────────────────────────────────────────

func TestFileWatcher_SyncReplaysFromLastRevision(t *testing.T) {
	ctrl := gomock.NewController(t)
	changeLog := mock.NewMockChangeLog(ctrl)
	notifier := mock.NewMockNotifier(ctrl)

	gomock.InOrder(
		changeLog.EXPECT().ChangesSince(gomock.Any(), int64(0)).Return([]store.Change{
			{Key: models.KeyAuthenticatedUser, Value: "true", Origin: "tab-a", Rev: 1},
			{Key: models.KeyPreviousHandle, Value: "alice", Origin: "tab-a", Rev: 2},
		}, nil),
		notifier.EXPECT().Publish(models.StorageEvent{Key: models.KeyAuthenticatedUser, NewValue: "true", Origin: "tab-a"}),
		notifier.EXPECT().Publish(models.StorageEvent{Key: models.KeyPreviousHandle, NewValue: "alice", Origin: "tab-a"}),

		changeLog.EXPECT().ChangesSince(gomock.Any(), int64(2)).Return([]store.Change{
			{Key: models.KeyAuthenticatedUser, Origin: "tab-b", Rev: 3, Deleted: true},
		}, nil),
		notifier.EXPECT().Publish(models.StorageEvent{Key: models.KeyAuthenticatedUser, OldValue: "true", Removed: true, Origin: "tab-b"}),
	)

	w := NewFileWatcher("/tmp/local.db", changeLog, notifier, 0, logger.Nop())
	require.NoError(t, w.Sync(context.Background()))
	require.NoError(t, w.Sync(context.Background()))
}

func TestFileWatcher_SyncError(t *testing.T) {
	ctrl := gomock.NewController(t)
	changeLog := mock.NewMockChangeLog(ctrl)
	changeLog.EXPECT().ChangesSince(gomock.Any(), int64(0)).Return(nil, errors.New("database is locked"))

	w := NewFileWatcher("/tmp/local.db", changeLog, &recordingNotifier{}, 0, logger.Nop())
	assert.ErrorContains(t, w.Sync(context.Background()), "database is locked")
}

// ── Run ─────────────────────────────────────────────────────────────────────

// fakeChangeLog serves a fixed history; only rows after CurrentRev count.
type fakeChangeLog struct {
	current int64
	changes []store.Change
}

func (f *fakeChangeLog) CurrentRev(context.Context) (int64, error) { return f.current, nil }

func (f *fakeChangeLog) ChangesSince(_ context.Context, rev int64) ([]store.Change, error) {
	var out []store.Change
	for _, c := range f.changes {
		if c.Rev > rev {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestFileWatcher_RunPublishesOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	changeLog := &fakeChangeLog{
		current: 1,
		changes: []store.Change{
			{Key: models.KeyPreviousHandle, Value: "old", Origin: "tab-x", Rev: 1},
			{Key: models.KeyLogoutState, Value: "true", Origin: "tab-a", Rev: 2},
		},
	}
	notifier := &recordingNotifier{}
	w := NewFileWatcher(path, changeLog, notifier, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// unrelated files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, notifier.Events())

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path+"-wal", []byte("x"), 0o600)
		return len(notifier.Events()) > 0
	}, 2*time.Second, 20*time.Millisecond)

	events := notifier.Events()
	assert.Equal(t, models.StorageEvent{Key: models.KeyLogoutState, NewValue: "true", Origin: "tab-a"}, events[0])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileWatcher_RunMissingDirectory(t *testing.T) {
	w := NewFileWatcher(filepath.Join(t.TempDir(), "missing", "local.db"), &fakeChangeLog{}, &recordingNotifier{}, 0, logger.Nop())
	assert.Error(t, w.Run(context.Background()))
}
