package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldExcludePath(t *testing.T) {
	fw := &FileWatcher{RootDir: "/ws", Exclude: []string{"vendor", ".git"}}

	assert.True(t, fw.shouldExcludePath("/ws/vendor/x.go"))
	assert.True(t, fw.shouldExcludePath("/ws/api/.git/HEAD"))
	assert.False(t, fw.shouldExcludePath("/ws/api/vendors.go"))
	assert.False(t, fw.shouldExcludePath("/ws"))
}

func TestRelevant(t *testing.T) {
	fw := &FileWatcher{Ext: ".go"}

	assert.True(t, fw.relevant(fsnotify.Event{Name: "/ws/a.go", Op: fsnotify.Write}))
	assert.True(t, fw.relevant(fsnotify.Event{Name: "/ws/old", Op: fsnotify.Remove}))
	assert.False(t, fw.relevant(fsnotify.Event{Name: "/ws/a.go", Op: fsnotify.Chmod}))
	assert.False(t, fw.relevant(fsnotify.Event{Name: "/ws/notes.md", Op: fsnotify.Write}))
}

func TestWatch_DebouncesBurst(t *testing.T) {
	root := t.TempDir()
	var calls atomic.Int32
	fw, err := NewFileWatcher(root, []string{".git"}, 100*time.Millisecond, func() error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- fw.Watch(ctx) }()

	// Give the watcher a moment to register the root.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "routes.go"), []byte("package main\n"), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
