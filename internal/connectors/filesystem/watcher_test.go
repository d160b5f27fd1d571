package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- NewWatcher().Watch(ctx, dir, func(path string) {
			changes <- path
		})
	}()

	target := filepath.Join(dir, "new_aaaaaaaaaaa.en.vtt")
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(target, []byte("WEBVTT"), 0644)
	}()

	select {
	case path := <-changes:
		assert.Equal(t, target, path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for file change event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	err := NewWatcher().Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), func(string) {})
	assert.Error(t, err)
}

func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		op      fsnotify.Op
		changed bool
	}{
		{name: "create", path: "/d/a.vtt", op: fsnotify.Create, changed: true},
		{name: "write", path: "/d/a.vtt", op: fsnotify.Write, changed: true},
		{name: "remove", path: "/d/a.vtt", op: fsnotify.Remove, changed: true},
		{name: "rename", path: "/d/a.vtt", op: fsnotify.Rename, changed: true},
		{name: "write and chmod", path: "/d/a.vtt", op: fsnotify.Write | fsnotify.Chmod, changed: true},
		{name: "chmod only", path: "/d/a.vtt", op: fsnotify.Chmod, changed: false},
		{name: "hidden", path: "/d/.a.vtt.part", op: fsnotify.Create, changed: false},
		{name: "hidden parent", path: "/home/u/.captionsearch/subtitles/a.vtt", op: fsnotify.Create, changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, changed := handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			require.Equal(t, tt.changed, changed)
			if changed {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}
