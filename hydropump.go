package hydropump

import (
	"log/slog"
	"time"

	"github.com/hydropump/hydropump/internal/platform"
	"github.com/hydropump/hydropump/pkg/core"
)

// --- Types ---

// Document is a public alias for the persisted envelope.
type Document = core.Document

// Payload is a public alias for the opaque document body.
type Payload = core.Payload

// Metadata is a public alias for document metadata.
type Metadata = core.Metadata

// Backend is a public alias for the storage capability contract.
type Backend = core.Backend

// Service is a public alias for the domain service.
type Service = core.Service

// Event is a public alias for change notifications.
type Event = core.Event

// --- Errors ---

var (
	ErrNotFound   = core.ErrNotFound
	ErrConflict   = core.ErrConflict
	ErrStorage    = core.ErrStorage
	ErrValidation = core.ErrValidation
)

// TemplateNotFoundError is a public alias for the missing-template error.
type TemplateNotFoundError = core.TemplateNotFoundError

// --- Configuration ---

// Option defines a functional option for configuring hydropump.
type Option = platform.Option

// WithBackend injects a custom storage backend.
func WithBackend(backend Backend) Option {
	return platform.WithBackend(backend)
}

// WithFormat selects the on-disk file format ("json", "yaml" or "yml").
func WithFormat(ext string) Option {
	return platform.WithFormat(ext)
}

// WithMemory swaps the filesystem backend for an ephemeral in-memory one.
func WithMemory(enabled bool) Option {
	return platform.WithMemory(enabled)
}

// WithMustExist refuses to create the root directory if it is missing.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the backend.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithIDFunc replaces the identifier generator.
func WithIDFunc(fn core.IDFunc) Option {
	return platform.WithIDFunc(fn)
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// New creates a new hydropump Service rooted at the given directory.
func New(root string, opts ...Option) (*core.Service, error) {
	return platform.New(root, opts...)
}

// Compile deep-merges payloads left to right; later payloads win.
// Exposed for callers that want the merge semantics without persistence.
func Compile(payloads ...Payload) Payload {
	return core.Compile(payloads...)
}
