package platform

import (
	"log/slog"
	"time"

	"github.com/hydropump/hydropump/pkg/core"
)

// options holds the internal configuration for the hydropump service.
type options struct {
	backend core.Backend
	format  string
	memory  bool
	must    bool
	logger  *slog.Logger
	idFunc  core.IDFunc
	clock   func() time.Time
}

// Option defines a functional option for configuring hydropump.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		format: ".json",
	}
}

// WithBackend injects a custom storage backend (e.g. mock, object store).
// If provided, the default filesystem backend is skipped.
func WithBackend(backend core.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithFormat selects the on-disk file format for the filesystem backend
// ("json", "yaml" or "yml").
func WithFormat(ext string) Option {
	return func(o *options) {
		o.format = ext
	}
}

// WithMemory swaps the filesystem backend for an ephemeral in-memory one.
func WithMemory(enabled bool) Option {
	return func(o *options) {
		o.memory = enabled
	}
}

// WithMustExist refuses to create the root directory if it is missing.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.must = must
	}
}

// WithLogger sets the logger for the backend.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIDFunc replaces the identifier generator used when a caller omits
// the id on create.
func WithIDFunc(fn core.IDFunc) Option {
	return func(o *options) {
		o.idFunc = fn
	}
}

// WithClock replaces the timestamp source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
