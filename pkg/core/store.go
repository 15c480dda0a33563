package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// IDFunc produces a fresh document identifier.
type IDFunc func() string

// NewID is the default identifier generator, a random UUIDv4 token.
// Collision probability is treated as negligible; there is no retry loop.
func NewID() string {
	return uuid.NewString()
}

// ValidateID rejects identifiers that are empty or would escape the
// namespace on path-based backends.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: identifier must not be empty", ErrValidation)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: identifier %q contains path elements", ErrValidation, id)
	}
	return nil
}

// Store is the generic CRUD layer over a Backend.
//
// It is the single place identifier-uniqueness and existence invariants
// are enforced; the Backend itself is never trusted to reject duplicate
// writes.
type Store struct {
	backend Backend
	newID   IDFunc
	now     func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDFunc replaces the identifier generator (useful for tests and
// callers with their own naming scheme).
func WithIDFunc(fn IDFunc) StoreOption {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store over the given backend.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		newID:   NewID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend exposes the underlying backend for capability checks
// (e.g. Watcher).
func (s *Store) Backend() Backend {
	return s.backend
}

// Create persists a new document. An empty id means "generate one".
// Fails wrapping ErrConflict if the resolved id already exists.
// The createdAt timestamp is stamped into metadata at write time.
func (s *Store) Create(ctx context.Context, namespace, id string, payload Payload, metadata Metadata) (Document, error) {
	if id == "" {
		id = s.newID()
	} else if err := ValidateID(id); err != nil {
		return Document{}, err
	}

	exists, err := s.backend.Exists(ctx, namespace, id)
	if err != nil {
		return Document{}, err
	}
	if exists {
		return Document{}, fmt.Errorf("%w: %s/%s", ErrConflict, namespace, id)
	}

	meta := metadata.Clone()
	if meta == nil {
		meta = make(Metadata)
	}
	meta[MetaCreatedAt] = s.timestamp()

	body := payload.Clone()
	if body == nil {
		body = make(Payload)
	}

	doc := Document{ID: id, Payload: body, Metadata: meta}
	if err := s.backend.Put(ctx, namespace, id, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Read retrieves a document. Fails wrapping ErrNotFound if absent.
func (s *Store) Read(ctx context.Context, namespace, id string) (Document, error) {
	if err := ValidateID(id); err != nil {
		return Document{}, err
	}
	return s.backend.Get(ctx, namespace, id)
}

// Update fully replaces an existing document's payload and metadata.
// The original createdAt survives; modifiedAt is restamped.
func (s *Store) Update(ctx context.Context, namespace, id string, payload Payload, metadata Metadata) (Document, error) {
	if err := ValidateID(id); err != nil {
		return Document{}, err
	}

	current, err := s.backend.Get(ctx, namespace, id)
	if err != nil {
		return Document{}, err
	}

	meta := metadata.Clone()
	if meta == nil {
		meta = make(Metadata)
	}
	if created, ok := current.Metadata[MetaCreatedAt]; ok {
		meta[MetaCreatedAt] = created
	}
	meta[MetaModifiedAt] = s.timestamp()

	body := payload.Clone()
	if body == nil {
		body = make(Payload)
	}

	doc := Document{ID: id, Payload: body, Metadata: meta}
	if err := s.backend.Put(ctx, namespace, id, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Delete removes a document. Fails wrapping ErrNotFound if absent.
func (s *Store) Delete(ctx context.Context, namespace, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return s.backend.Delete(ctx, namespace, id)
}

// Exists reports whether a document is present.
func (s *Store) Exists(ctx context.Context, namespace, id string) (bool, error) {
	if err := ValidateID(id); err != nil {
		return false, err
	}
	return s.backend.Exists(ctx, namespace, id)
}

// List returns the identifiers in a namespace, sorted. A non-empty
// pattern filters them with doublestar glob matching (e.g. "prod-*").
func (s *Store) List(ctx context.Context, namespace, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid list pattern %q", ErrValidation, pattern)
	}

	ids := []string{}
	for id, err := range s.backend.List(ctx, namespace) {
		if err != nil {
			return nil, err
		}
		if pattern != "" {
			ok, err := doublestar.Match(pattern, id)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid list pattern %q", ErrValidation, pattern)
			}
			if !ok {
				continue
			}
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
