package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.json")

	require.NoError(t, writeFileAtomic(target, []byte(`{"v":1}`), 0644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(data))

	// Overwrite in place.
	require.NoError(t, writeFileAtomic(target, []byte(`{"v":2}`), 0644))

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(data))

	// No temp files may survive.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), TempFilePrefix), "leftover temp file %s", entry.Name())
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := writeFileAtomic(filepath.Join(t.TempDir(), "no-such-dir", "doc.json"), []byte("{}"), 0644)
	require.Error(t, err)
}
