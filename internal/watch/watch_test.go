package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_EmitsOnDocspecWrite(t *testing.T) {
	dir := t.TempDir()
	docspec := filepath.Join(dir, "README.docspec.md")
	require.NoError(t, os.WriteFile(docspec, []byte("## 1. A\n\nx\n"), 0o644))

	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add([]string{docspec}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(docspec, []byte("## 1. A\n\nchanged\n"), 0o644))

	select {
	case ev := <-w.Events():
		require.Equal(t, docspec, ev.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("no event received for docspec write")
	}
}

func TestWatcher_IgnoresNonDocspecFiles(t *testing.T) {
	dir := t.TempDir()
	docspec := filepath.Join(dir, "README.docspec.md")
	other := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(docspec, []byte("x"), 0o644))

	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add([]string{docspec}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(other, []byte("irrelevant"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestWatcher_EventChannelClosesWhenRunReturns(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = w.Run(ctx) }()
	cancel()

	select {
	case _, ok := <-w.Events():
		require.False(t, ok, "event channel should be closed after Run returns")
	case <-time.After(time.Second):
		t.Fatal("event channel not closed after Run returned")
	}
}
