// Document is the central entity of the domain.
package core

// Payload is the arbitrarily nested body of a document.
// It has no required shape; values are scalars, sequences or nested mappings.
type Payload map[string]any

// Metadata represents the flexible key-value pairs associated with a document.
type Metadata map[string]any

// Document is the persisted envelope for templates and instructions.
// It is agnostic to storage format (JSON, YAML, in-memory).
type Document struct {
	ID       string
	Payload  Payload
	Metadata Metadata
}

// Namespaces partition the backend's storage so template and instruction
// identifiers cannot collide.
const (
	NamespaceTemplates    = "templates"
	NamespaceInstructions = "instructions"
)

// System-managed metadata keys. These always win over caller-supplied
// values of the same name.
const (
	MetaCreatedAt  = "createdAt"
	MetaModifiedAt = "modifiedAt"
	MetaCompiled   = "compiled"
	MetaTemplates  = "templates"
)

// Clone returns a deep copy of the payload. Mutating the copy never
// affects the original. A nil payload clones to nil.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = copyValue(v)
	}
	return out
}

// Clone returns a deep copy of the metadata. A nil metadata clones to nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	return Document{
		ID:       d.ID,
		Payload:  d.Payload.Clone(),
		Metadata: d.Metadata.Clone(),
	}
}

// EventType represents the type of change observed in a namespace.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a stored document.
type Event struct {
	Type      EventType
	Namespace string
	ID        string
	Timestamp int64 // Unix timestamp
}
