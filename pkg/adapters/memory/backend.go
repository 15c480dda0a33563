// Package memory implements core.Backend on a mutex-guarded map. It is
// used for ephemeral stores and as a reference implementation of the
// backend contract in tests.
package memory

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/hydropump/hydropump/pkg/core"
)

// Backend keeps documents per namespace in process memory. Nothing
// survives a restart.
type Backend struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]core.Document
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{
		namespaces: make(map[string]map[string]core.Document),
	}
}

// Put stores a deep copy of the document, so later mutations by the
// caller never leak into the store.
func (b *Backend) Put(ctx context.Context, namespace, id string, doc core.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ns, ok := b.namespaces[namespace]
	if !ok {
		ns = make(map[string]core.Document)
		b.namespaces[namespace] = ns
	}
	ns[id] = doc.Clone()
	return nil
}

// Get returns a deep copy of the stored document.
func (b *Backend) Get(ctx context.Context, namespace, id string) (core.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	doc, ok := b.namespaces[namespace][id]
	if !ok {
		return core.Document{}, fmt.Errorf("%w: %s/%s", core.ErrNotFound, namespace, id)
	}
	return doc.Clone(), nil
}

// Delete removes the document.
func (b *Backend) Delete(ctx context.Context, namespace, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.namespaces[namespace][id]; !ok {
		return fmt.Errorf("%w: %s/%s", core.ErrNotFound, namespace, id)
	}
	delete(b.namespaces[namespace], id)
	return nil
}

// Exists reports whether the document is present.
func (b *Backend) Exists(ctx context.Context, namespace, id string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.namespaces[namespace][id]
	return ok, nil
}

// List yields the identifiers in the namespace. The snapshot is taken
// when iteration starts, so the sequence is restartable.
func (b *Backend) List(ctx context.Context, namespace string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		b.mu.RLock()
		ids := make([]string, 0, len(b.namespaces[namespace]))
		for id := range b.namespaces[namespace] {
			ids = append(ids, id)
		}
		b.mu.RUnlock()

		for _, id := range ids {
			if !yield(id, nil) {
				return
			}
		}
	}
}
