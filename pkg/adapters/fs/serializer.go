package fs

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hydropump/hydropump/pkg/core"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads from r and returns a Document (without its ID, which
	// lives in the filename).
	Parse(r io.Reader) (*core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by
// file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": &JSONSerializer{},
		".yaml": &YAMLSerializer{},
		".yml":  &YAMLSerializer{},
	}
}

// envelope is the on-disk shape of a document.
type envelope struct {
	Metadata core.Metadata `json:"metadata" yaml:"metadata"`
	Payload  core.Payload  `json:"payload" yaml:"payload"`
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct{}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Document, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return docFromEnvelope(env), nil
}

func (s *JSONSerializer) Serialize(doc core.Document) ([]byte, error) {
	return json.MarshalIndent(envelope{Metadata: doc.Metadata, Payload: doc.Payload}, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML files.
type YAMLSerializer struct{}

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return docFromEnvelope(env), nil
}

func (s *YAMLSerializer) Serialize(doc core.Document) ([]byte, error) {
	return yaml.Marshal(envelope{Metadata: doc.Metadata, Payload: doc.Payload})
}

func docFromEnvelope(env envelope) *core.Document {
	doc := &core.Document{Metadata: env.Metadata, Payload: env.Payload}
	if doc.Metadata == nil {
		doc.Metadata = make(core.Metadata)
	}
	if doc.Payload == nil {
		doc.Payload = make(core.Payload)
	}
	return doc
}
