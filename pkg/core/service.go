package core

import (
	"context"
	"errors"
)

// Service is the composition root for the document engine. It binds one
// Backend to both namespaces and exposes the public template and
// instruction operations. It carries no state beyond the injected
// backend reference.
type Service struct {
	backend Backend
	store   *Store
	manager *Manager
}

// NewService creates a Service over the given backend.
func NewService(backend Backend, opts ...StoreOption) *Service {
	store := NewStore(backend, opts...)
	return &Service{
		backend: backend,
		store:   store,
		manager: NewManager(store),
	}
}

// --- Templates ---

// CreateTemplate persists a new template. An empty id means "generate one".
func (s *Service) CreateTemplate(ctx context.Context, id string, payload Payload, metadata Metadata) (Document, error) {
	return s.store.Create(ctx, NamespaceTemplates, id, payload, metadata)
}

// GetTemplate retrieves a template by its id.
func (s *Service) GetTemplate(ctx context.Context, id string) (Document, error) {
	return s.store.Read(ctx, NamespaceTemplates, id)
}

// UpdateTemplate fully replaces an existing template.
func (s *Service) UpdateTemplate(ctx context.Context, id string, payload Payload, metadata Metadata) (Document, error) {
	return s.store.Update(ctx, NamespaceTemplates, id, payload, metadata)
}

// DeleteTemplate removes a template. Instructions that already embedded
// the template keep their merged payload; only future compiles notice.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.store.Delete(ctx, NamespaceTemplates, id)
}

// ListTemplates returns the template ids, optionally glob-filtered.
func (s *Service) ListTemplates(ctx context.Context, pattern string) ([]string, error) {
	return s.store.List(ctx, NamespaceTemplates, pattern)
}

// --- Instructions ---

// CreateInstruction compiles the referenced templates with the source
// payload and persists the result. See Manager.CreateInstruction.
func (s *Service) CreateInstruction(ctx context.Context, id string, source Payload, metadata Metadata, templateIDs []string) (Document, error) {
	return s.manager.CreateInstruction(ctx, id, source, metadata, templateIDs)
}

// GetInstruction retrieves an instruction by its id.
func (s *Service) GetInstruction(ctx context.Context, id string) (Document, error) {
	return s.manager.GetInstruction(ctx, id)
}

// UpdateInstruction fully replaces an existing instruction's payload and
// metadata. No recompilation occurs; the supplied payload is stored as-is.
func (s *Service) UpdateInstruction(ctx context.Context, id string, payload Payload, metadata Metadata) (Document, error) {
	return s.store.Update(ctx, NamespaceInstructions, id, payload, metadata)
}

// DeleteInstruction removes an instruction.
func (s *Service) DeleteInstruction(ctx context.Context, id string) error {
	return s.manager.DeleteInstruction(ctx, id)
}

// ListInstructions returns the instruction ids, optionally glob-filtered.
func (s *Service) ListInstructions(ctx context.Context, pattern string) ([]string, error) {
	return s.store.List(ctx, NamespaceInstructions, pattern)
}

// CompileInstruction re-merges a stored instruction against the current
// template set without persisting the result.
func (s *Service) CompileInstruction(ctx context.Context, id string) (Document, error) {
	return s.manager.Recompile(ctx, id)
}

// Watch observes changes in a namespace if the backend supports it.
func (s *Service) Watch(ctx context.Context, namespace string) (<-chan Event, error) {
	w, ok := s.backend.(Watcher)
	if !ok {
		return nil, errors.New("backend does not support watching")
	}
	return w.Watch(ctx, namespace)
}
