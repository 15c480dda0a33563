package core

import (
	"context"
	"errors"
)

// Manager orchestrates template resolution and instruction persistence.
//
// Templates are applied left to right, later templates overriding earlier
// ones; the instruction's own source payload is merged last and therefore
// always wins. That ordering is a contract, not an incidental default: a
// caller's explicit values are never shadowed by a template.
type Manager struct {
	store *Store
}

// NewManager creates a Manager over the given store.
func NewManager(store *Store) *Manager {
	return &Manager{store: store}
}

// CreateInstruction resolves every referenced template, compiles them with
// the source payload, and persists the result in the instructions
// namespace. If any template is missing, nothing is written.
//
// The resolved template ids are recorded verbatim in metadata under
// "templates" for provenance, even when empty, and "compiled" reflects
// whether any template participated in the merge.
func (m *Manager) CreateInstruction(ctx context.Context, id string, source Payload, metadata Metadata, templateIDs []string) (Document, error) {
	resolved := make([]Payload, 0, len(templateIDs)+1)
	for _, tid := range templateIDs {
		tmpl, err := m.store.Read(ctx, NamespaceTemplates, tid)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Document{}, &TemplateNotFoundError{ID: tid}
			}
			return Document{}, err
		}
		resolved = append(resolved, tmpl.Payload)
	}
	resolved = append(resolved, source)

	meta := metadata.Clone()
	if meta == nil {
		meta = make(Metadata)
	}
	meta[MetaCompiled] = len(templateIDs) > 0
	meta[MetaTemplates] = append([]string{}, templateIDs...)

	return m.store.Create(ctx, NamespaceInstructions, id, Compile(resolved...), meta)
}

// GetInstruction retrieves a stored instruction. No compilation occurs on
// read; the merged payload is persisted, not recomputed.
func (m *Manager) GetInstruction(ctx context.Context, id string) (Document, error) {
	return m.store.Read(ctx, NamespaceInstructions, id)
}

// DeleteInstruction removes a stored instruction.
func (m *Manager) DeleteInstruction(ctx context.Context, id string) error {
	return m.store.Delete(ctx, NamespaceInstructions, id)
}

// Recompile re-resolves an instruction's recorded template list against
// the current template set and returns the freshly merged document. The
// stored payload is applied last, so its values keep their precedence.
// Nothing is persisted; the stored instruction is left untouched.
func (m *Manager) Recompile(ctx context.Context, id string) (Document, error) {
	doc, err := m.store.Read(ctx, NamespaceInstructions, id)
	if err != nil {
		return Document{}, err
	}

	templateIDs := templateIDsFrom(doc.Metadata)
	resolved := make([]Payload, 0, len(templateIDs)+1)
	for _, tid := range templateIDs {
		tmpl, err := m.store.Read(ctx, NamespaceTemplates, tid)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Document{}, &TemplateNotFoundError{ID: tid}
			}
			return Document{}, err
		}
		resolved = append(resolved, tmpl.Payload)
	}
	resolved = append(resolved, doc.Payload)

	doc.Payload = Compile(resolved...)
	return doc, nil
}

// templateIDsFrom reads the provenance list out of metadata. Serializers
// may hand the list back as []any, so both shapes are accepted.
func templateIDsFrom(meta Metadata) []string {
	switch v := meta[MetaTemplates].(type) {
	case []string:
		return v
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			}
		}
		return ids
	}
	return nil
}
