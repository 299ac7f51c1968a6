// Package load normalizes a raw data-model document into the structural
// representation consumed by the generator. It performs no semantic
// transformation of field definitions; it only decodes the document and
// builds name-based lookup indexes.
package load

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind is the category of a field.
type Kind string

const (
	// KindScalar is a field holding a primitive value.
	KindScalar Kind = "scalar"
	// KindEnum is a field whose value is one of a named enum's literals.
	KindEnum Kind = "enum"
	// KindRelation is a field referencing another entity.
	KindRelation Kind = "relation"
)

// Model is a complete data-model description: the global enums and the
// entities in their declared order.
type Model struct {
	Enums    []*Enum   `json:"enums,omitempty" yaml:"enums,omitempty"`
	Entities []*Entity `json:"entities,omitempty" yaml:"entities,omitempty"`

	enums    map[string]*Enum
	entities map[string]*Entity
}

// Enum is a named set of literal values. Enums are declared once globally
// and referenced by name from any field whose declared type matches.
type Enum struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// Entity is one data-model type with its ordered fields and the unique and
// primary-key declarations made on it. Field order is preserved from the
// document and is significant for output stability.
type Entity struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields     []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	PrimaryKey []string `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Indexes    []*Index `json:"indexes,omitempty" yaml:"indexes,omitempty"`

	fields map[string]*Field
}

// Field is a single entity field. For relation fields, Type names the
// related entity and RelationFields names the local scalar fields carrying
// the relation's foreign key. Doc may hold an author override expression
// recognized by the expression builder.
type Field struct {
	Name           string   `json:"name,omitempty" yaml:"name,omitempty"`
	Kind           Kind     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type           string   `json:"type,omitempty" yaml:"type,omitempty"`
	List           bool     `json:"list,omitempty" yaml:"list,omitempty"`
	Required       bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Default        bool     `json:"default,omitempty" yaml:"default,omitempty"`
	ID             bool     `json:"id,omitempty" yaml:"id,omitempty"`
	Unique         bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	RelationFields []string `json:"relation_fields,omitempty" yaml:"relation_fields,omitempty"`
	Doc            string   `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// Index is a multi-field constraint group declared on an entity. Groups
// with Unique set participate in unique-lookup generation.
type Index struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Unique bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
}

// UnmarshalModel decodes a JSON model document.
func UnmarshalModel(buf []byte) (*Model, error) {
	m := &Model{}
	if err := json.Unmarshal(buf, m); err != nil {
		return nil, fmt.Errorf("zodgen: decode model: %w", err)
	}
	if err := m.index(); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalModelYAML decodes a YAML model document.
func UnmarshalModelYAML(buf []byte) (*Model, error) {
	m := &Model{}
	if err := yaml.Unmarshal(buf, m); err != nil {
		return nil, fmt.Errorf("zodgen: decode model: %w", err)
	}
	if err := m.index(); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalModel encodes a model back to its JSON document form.
func MarshalModel(m *Model) ([]byte, error) {
	return json.Marshal(m)
}

// Enum returns the declared enum with the given name, or nil.
// The index is global and available before any entity is processed, since
// entity fields may reference any enum regardless of declaration order.
func (m *Model) Enum(name string) *Enum {
	return m.enums[name]
}

// Entity returns the declared entity with the given name, or nil.
func (m *Model) Entity(name string) *Entity {
	return m.entities[name]
}

// Field returns the entity field with the given name, or nil.
func (e *Entity) Field(name string) *Field {
	return e.fields[name]
}

// index builds the name-based lookup tables and rejects structurally
// malformed documents.
func (m *Model) index() error {
	m.enums = make(map[string]*Enum, len(m.Enums))
	for _, en := range m.Enums {
		if en.Name == "" {
			return fmt.Errorf("zodgen: enum without a name")
		}
		if _, ok := m.enums[en.Name]; ok {
			return fmt.Errorf("zodgen: enum %q redeclared", en.Name)
		}
		m.enums[en.Name] = en
	}
	m.entities = make(map[string]*Entity, len(m.Entities))
	for _, e := range m.Entities {
		if e.Name == "" {
			return fmt.Errorf("zodgen: entity without a name")
		}
		if _, ok := m.entities[e.Name]; ok {
			return fmt.Errorf("zodgen: entity %q redeclared", e.Name)
		}
		m.entities[e.Name] = e
		e.fields = make(map[string]*Field, len(e.Fields))
		for _, f := range e.Fields {
			if f.Name == "" {
				return fmt.Errorf("zodgen: entity %q: field without a name", e.Name)
			}
			if _, ok := e.fields[f.Name]; ok {
				return fmt.Errorf("zodgen: field %q redeclared for entity %q", f.Name, e.Name)
			}
			if f.Kind == "" {
				f.Kind = KindScalar
			}
			e.fields[f.Name] = f
		}
	}
	return nil
}
