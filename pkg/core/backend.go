package core

import (
	"context"
	"iter"
)

// Backend defines the contract for durable storage of documents.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, S3, in-memory, SQL).
//
// The Backend is a dumb byte bucket with namespaces: it never checks
// uniqueness or referential integrity. Those invariants live in the Store.
type Backend interface {
	// Put writes the full document under namespace/id, overwriting any
	// previous version. Fails wrapping ErrStorage on I/O failure.
	Put(ctx context.Context, namespace, id string, doc Document) error

	// Get retrieves a document. Fails wrapping ErrNotFound if absent.
	Get(ctx context.Context, namespace, id string) (Document, error)

	// Delete removes a document. Fails wrapping ErrNotFound if absent.
	Delete(ctx context.Context, namespace, id string) error

	// Exists reports whether a document is present. It only fails
	// (wrapping ErrStorage) when presence cannot be determined.
	Exists(ctx context.Context, namespace, id string) (bool, error)

	// List yields the identifiers currently stored in the namespace.
	// The sequence is finite and restartable; ordering is backend-defined
	// and not guaranteed stable across calls.
	List(ctx context.Context, namespace string) iter.Seq2[string, error]
}

// Watcher is an optional capability for backends that can report changes
// to a namespace as they happen.
type Watcher interface {
	// Watch emits events until ctx is done. The channel is closed when
	// the watch terminates.
	Watch(ctx context.Context, namespace string) (<-chan Event, error)
}
