// Package fs implements core.Backend on the local filesystem: one
// physical file per document, one subdirectory per namespace, encoded in
// the configured file format (JSON or YAML).
package fs

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hydropump/hydropump/pkg/core"
)

// Config holds the configuration for the filesystem backend.
type Config struct {
	// Root is the directory holding the namespace subdirectories.
	// Defaults to the current directory.
	Root string

	// Extension selects the on-disk format: ".json" (default), ".yaml"
	// or ".yml". A bare name without the dot is accepted.
	Extension string

	// MustExist refuses to create the root directory if it is missing.
	MustExist bool

	Logger *slog.Logger
}

// Backend stores documents as files under root/namespace/id.ext.
type Backend struct {
	root       string
	ext        string
	serializer Serializer
	logger     *slog.Logger
}

// New creates a filesystem backend rooted at cfg.Root.
func New(cfg Config) (*Backend, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}

	ext := cfg.Extension
	if ext == "" {
		ext = ".json"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	serializer, ok := DefaultSerializers()[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}

	if cfg.MustExist {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("root directory does not exist: %s", root)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root path is not a directory: %s", root)
		}
	} else if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root directory: %w", err)
	}

	return &Backend{
		root:       root,
		ext:        ext,
		serializer: serializer,
		logger:     cfg.Logger,
	}, nil
}

func (b *Backend) path(namespace, id string) string {
	return filepath.Join(b.root, namespace, id+b.ext)
}

// Put writes the full document, overwriting any previous version.
// The write is atomic at single-file granularity (temp file + rename);
// no cross-file transaction exists.
func (b *Backend) Put(ctx context.Context, namespace, id string, doc core.Document) error {
	path := b.path(namespace, id)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: failed to create namespace directory: %w", core.ErrStorage, err)
	}

	data, err := b.serializer.Serialize(doc)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize document: %w", core.ErrStorage, err)
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	if b.logger != nil {
		b.logger.Debug("wrote document", "namespace", namespace, "id", id, "path", path)
	}
	return nil
}

// Get reads and decodes a document.
func (b *Backend) Get(ctx context.Context, namespace, id string) (core.Document, error) {
	path := b.path(namespace, id)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Document{}, fmt.Errorf("%w: %s/%s", core.ErrNotFound, namespace, id)
		}
		return core.Document{}, fmt.Errorf("%w: %w", core.ErrStorage, err)
	}
	defer f.Close()

	doc, err := b.serializer.Parse(f)
	if err != nil {
		return core.Document{}, fmt.Errorf("%w: failed to parse document %s: %w", core.ErrStorage, id, err)
	}
	doc.ID = id
	return *doc, nil
}

// Delete removes the document's file.
func (b *Backend) Delete(ctx context.Context, namespace, id string) error {
	path := b.path(namespace, id)

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/%s", core.ErrNotFound, namespace, id)
		}
		return fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	if b.logger != nil {
		b.logger.Debug("deleted document", "namespace", namespace, "id", id, "path", path)
	}
	return nil
}

// Exists reports whether the document's file is present.
func (b *Backend) Exists(ctx context.Context, namespace, id string) (bool, error) {
	_, err := os.Stat(b.path(namespace, id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", core.ErrStorage, err)
}

// List yields the identifiers stored in the namespace. A missing
// namespace directory is an empty namespace, not an error. Each range
// over the sequence re-reads the directory.
func (b *Backend) List(ctx context.Context, namespace string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(filepath.Join(b.root, namespace))
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			yield("", fmt.Errorf("%w: %w", core.ErrStorage, err))
			return
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if filepath.Ext(name) != b.ext || strings.HasPrefix(name, TempFilePrefix) {
				continue
			}
			if !yield(strings.TrimSuffix(name, b.ext), nil) {
				return
			}
		}
	}
}
