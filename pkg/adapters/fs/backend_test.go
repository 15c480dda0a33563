package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropump/hydropump/pkg/adapters/fs"
	"github.com/hydropump/hydropump/pkg/core"
)

// setupBackend creates a backend rooted in a fresh temp directory.
func setupBackend(t *testing.T, opts ...func(*fs.Config)) (*fs.Backend, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "store")
	cfg := fs.Config{Root: root}
	for _, opt := range opts {
		opt(&cfg)
	}

	backend, err := fs.New(cfg)
	require.NoError(t, err)
	return backend, root
}

func TestNew(t *testing.T) {
	t.Run("Creates Root if Missing", func(t *testing.T) {
		_, root := setupBackend(t)
		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		_, err := fs.New(fs.Config{
			Root:      filepath.Join(t.TempDir(), "missing"),
			MustExist: true,
		})
		require.Error(t, err)
	})

	t.Run("Rejects Unknown Extension", func(t *testing.T) {
		_, err := fs.New(fs.Config{Root: t.TempDir(), Extension: "toml"})
		require.Error(t, err)
	})

	t.Run("Accepts Extension Without Dot", func(t *testing.T) {
		_, err := fs.New(fs.Config{Root: t.TempDir(), Extension: "yaml"})
		require.NoError(t, err)
	})
}

func TestBackend_PutGetRoundtrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			backend, root := setupBackend(t, func(c *fs.Config) { c.Extension = ext })
			ctx := context.Background()

			doc := core.Document{
				ID: "web",
				Payload: core.Payload{
					"server": map[string]any{"host": "localhost", "port": 8080},
					"tags":   []any{"edge", "public"},
				},
				Metadata: core.Metadata{"createdAt": "2024-05-01T10:00:00Z", "compiled": false},
			}

			require.NoError(t, backend.Put(ctx, core.NamespaceInstructions, "web", doc))

			// One physical file per document, namespace as subdirectory.
			_, err := os.Stat(filepath.Join(root, "instructions", "web"+ext))
			require.NoError(t, err)

			got, err := backend.Get(ctx, core.NamespaceInstructions, "web")
			require.NoError(t, err)

			assert.Equal(t, "web", got.ID)
			assert.Equal(t, "localhost", nested(t, got.Payload, "server")["host"])
			assert.Equal(t, false, got.Metadata["compiled"])
			assert.Len(t, got.Payload["tags"], 2)
		})
	}
}

func TestBackend_GetMissing(t *testing.T) {
	backend, _ := setupBackend(t)

	_, err := backend.Get(context.Background(), core.NamespaceTemplates, "ghost")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestBackend_Delete(t *testing.T) {
	backend, _ := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "t", core.Document{ID: "t"}))
	require.NoError(t, backend.Delete(ctx, core.NamespaceTemplates, "t"))

	_, err := backend.Get(ctx, core.NamespaceTemplates, "t")
	require.ErrorIs(t, err, core.ErrNotFound)

	require.ErrorIs(t, backend.Delete(ctx, core.NamespaceTemplates, "t"), core.ErrNotFound)
}

func TestBackend_Exists(t *testing.T) {
	backend, _ := setupBackend(t)
	ctx := context.Background()

	ok, err := backend.Exists(ctx, core.NamespaceTemplates, "t")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "t", core.Document{ID: "t"}))

	ok, err = backend.Exists(ctx, core.NamespaceTemplates, "t")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBackend_List(t *testing.T) {
	backend, root := setupBackend(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, id, core.Document{ID: id}))
	}

	// Foreign files and leftover temp files must be invisible.
	require.NoError(t, os.WriteFile(filepath.Join(root, "templates", "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "templates", fs.TempFilePrefix+"123.json"), []byte("{}"), 0644))

	collect := func() []string {
		var ids []string
		for id, err := range backend.List(ctx, core.NamespaceTemplates) {
			require.NoError(t, err)
			ids = append(ids, id)
		}
		return ids
	}

	assert.ElementsMatch(t, []string{"a", "b", "c"}, collect())
	// The sequence is restartable.
	assert.ElementsMatch(t, []string{"a", "b", "c"}, collect())
}

func TestBackend_ListMissingNamespace(t *testing.T) {
	backend, _ := setupBackend(t)

	count := 0
	for _, err := range backend.List(context.Background(), "nothing-here") {
		require.NoError(t, err)
		count++
	}
	assert.Zero(t, count)
}

func TestBackend_PutOverwrites(t *testing.T) {
	backend, _ := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "t", core.Document{
		ID: "t", Payload: core.Payload{"v": "one"},
	}))
	require.NoError(t, backend.Put(ctx, core.NamespaceTemplates, "t", core.Document{
		ID: "t", Payload: core.Payload{"v": "two"},
	}))

	got, err := backend.Get(ctx, core.NamespaceTemplates, "t")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Payload["v"])
}

func nested(t *testing.T, p core.Payload, key string) map[string]any {
	t.Helper()
	m, ok := p[key].(map[string]any)
	require.True(t, ok, "expected %q to be a mapping, got %T", key, p[key])
	return m
}
