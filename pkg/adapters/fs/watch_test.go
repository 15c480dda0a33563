package fs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hydropump/hydropump/pkg/core"
)

func TestBackend_Watch(t *testing.T) {
	backend, _ := setupBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := backend.Watch(ctx, core.NamespaceTemplates)
	require.NoError(t, err)

	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "watched", core.Document{
		ID:      "watched",
		Payload: core.Payload{"v": 1},
	}))

	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed unexpectedly")
		require.Equal(t, "watched", ev.ID)
		require.Equal(t, core.NamespaceTemplates, ev.Namespace)
		// Atomic rename surfaces new documents as creates.
		require.Equal(t, core.EventCreate, ev.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestBackend_WatchStopsOnCancel(t *testing.T) {
	backend, _ := setupBackend(t)

	ctx, cancel := context.WithCancel(context.Background())

	events, err := backend.Watch(ctx, core.NamespaceInstructions)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "expected channel to close after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch to stop")
	}
}
