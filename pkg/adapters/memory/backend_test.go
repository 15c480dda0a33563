package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropump/hydropump/pkg/adapters/memory"
	"github.com/hydropump/hydropump/pkg/core"
)

func TestBackend_CRUD(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	doc := core.Document{
		ID:       "t",
		Payload:  core.Payload{"a": 1},
		Metadata: core.Metadata{"createdAt": "2024-05-01T10:00:00Z"},
	}

	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "t", doc))

	ok, err := backend.Exists(ctx, core.NamespaceTemplates, "t")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := backend.Get(ctx, core.NamespaceTemplates, "t")
	require.NoError(t, err)
	assert.Equal(t, doc.Payload, got.Payload)

	require.NoError(t, backend.Delete(ctx, core.NamespaceTemplates, "t"))
	require.ErrorIs(t, backend.Delete(ctx, core.NamespaceTemplates, "t"), core.ErrNotFound)

	_, err = backend.Get(ctx, core.NamespaceTemplates, "t")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestBackend_NamespacesAreIsolated(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "same", core.Document{ID: "same"}))

	ok, err := backend.Exists(ctx, core.NamespaceInstructions, "same")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBackend_CopiesOnPutAndGet(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	payload := core.Payload{"limits": map[string]any{"cpu": 2}}
	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "t", core.Document{ID: "t", Payload: payload}))

	// Mutating the caller's payload after Put must not change the store.
	payload["limits"].(map[string]any)["cpu"] = 99

	got, err := backend.Get(ctx, core.NamespaceTemplates, "t")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Payload["limits"].(map[string]any)["cpu"])

	// Mutating a returned document must not change the store either.
	got.Payload["limits"].(map[string]any)["cpu"] = 77

	again, err := backend.Get(ctx, core.NamespaceTemplates, "t")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Payload["limits"].(map[string]any)["cpu"])
}

func TestBackend_List(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		require.NoError(t, backend.Put(ctx, core.NamespaceInstructions, id, core.Document{ID: id}))
	}

	collect := func() []string {
		var ids []string
		for id, err := range backend.List(ctx, core.NamespaceInstructions) {
			require.NoError(t, err)
			ids = append(ids, id)
		}
		return ids
	}

	assert.ElementsMatch(t, []string{"a", "b"}, collect())
	assert.ElementsMatch(t, []string{"a", "b"}, collect())
}
