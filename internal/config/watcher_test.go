package config

import (
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/sample/internal/core"
)

func TestWatcher_InitialLoadFailure(t *testing.T) {
	_, err := NewWatcher(writeConfig(t, "version: \"1\"\n"), "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, validConfig)

	var (
		mu       sync.Mutex
		reloaded []*Config
	)
	w, err := NewWatcher(path, "", func(cfg *Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			reloaded = append(reloaded, cfg)
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "demo", w.Snapshot().Name)
	assert.Zero(t, w.ReloadCount())

	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nname: renamed\n"), 0o600))

	assert.Eventually(t, func() bool {
		return w.Snapshot().Name == "renamed"
	}, 5*time.Second, 50*time.Millisecond)
	assert.GreaterOrEqual(t, w.ReloadCount(), uint32(1))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, reloaded)
	assert.Equal(t, "renamed", reloaded[len(reloaded)-1].Name)
}

func TestWatcher_KeepsSnapshotOnInvalidReload(t *testing.T) {
	path := writeConfig(t, validConfig)

	errs := make(chan error, 4)
	w, err := NewWatcher(path, "", func(_ *Config, err error) {
		if err != nil {
			select {
			case errs <- err:
			default:
			}
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o600))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	case <-time.After(5 * time.Second):
		t.Fatal("expected reload error")
	}

	assert.Equal(t, "demo", w.Snapshot().Name)
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(writeConfig(t, validConfig), "", nil)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_ReloadsOnRenameReplace(t *testing.T) {
	path := writeConfig(t, validConfig)

	w, err := NewWatcher(path, "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	tmp := path + ".swp"
	require.NoError(t, os.WriteFile(tmp, []byte("version: \"1\"\nname: first\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool {
		return w.Snapshot().Name == "first"
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(tmp, []byte("version: \"1\"\nname: second\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool {
		return w.Snapshot().Name == "second"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	path := writeConfig(t, validConfig)

	w, err := NewWatcher(path, "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path+".bak", []byte("version: \"1\"\nname: other\n"), 0o600))

	time.Sleep(2 * debounce)
	assert.Zero(t, w.ReloadCount())
	assert.Equal(t, "demo", w.Snapshot().Name)
}

func TestWatcher_NoCallbackAfterClose(t *testing.T) {
	path := writeConfig(t, validConfig)

	var calls atomic.Int32
	w, err := NewWatcher(path, "", func(*Config, error) {
		calls.Add(1)
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nname: late\n"), 0o600))

	// Let the event arm the debounce timer, then close before it fires.
	time.Sleep(debounce / 5)
	require.NoError(t, w.Close())
	closedAt := calls.Load()

	time.Sleep(2 * debounce)
	assert.Equal(t, closedAt, calls.Load())
	assert.Zero(t, w.ReloadCount())
}
