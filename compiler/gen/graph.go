package gen

import (
	"github.com/syssam/zodgen/compiler/load"
)

// Graph holds the entities of one loaded model together with the shared
// generation configuration.
type Graph struct {
	*Config
	// Nodes are the model entities in their declared order.
	Nodes []*Type

	enums map[string]*load.Enum
	nodes map[string]*Type
}

// Type represents one entity in the graph.
type Type struct {
	*Config
	// Name holds the entity name.
	Name string
	// Fields holds the entity fields in declared order.
	Fields []*Field
	fields map[string]*Field
	// PrimaryKey holds the names of the primary-key group, if declared.
	PrimaryKey []string
	// Indexes are the constraint groups declared on the entity.
	Indexes []*load.Index
}

// Field holds the information of an entity field used by the generator.
type Field struct {
	cfg *Config
	typ *Type
	def *load.Field
	// Name is the field name as declared.
	Name string
}

// NewGraph creates a generation graph from a loaded model.
func NewGraph(c *Config, m *load.Model) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing generation config")
	}
	if m == nil {
		return nil, NewModelError("", "", "missing model", ErrInvalidModel)
	}
	g := &Graph{
		Config: c,
		Nodes:  make([]*Type, 0, len(m.Entities)),
		nodes:  make(map[string]*Type, len(m.Entities)),
		enums:  make(map[string]*load.Enum, len(m.Enums)),
	}
	for _, en := range m.Enums {
		g.enums[en.Name] = en
	}
	for _, e := range m.Entities {
		t, err := NewType(c, e)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
		g.nodes[t.Name] = t
	}
	return g, nil
}

// NewType creates a graph node from a loaded entity.
func NewType(c *Config, e *load.Entity) (*Type, error) {
	if e.Name == "" {
		return nil, NewModelError("", "", "entity without a name", ErrInvalidModel)
	}
	t := &Type{
		Config:     c,
		Name:       e.Name,
		Fields:     make([]*Field, 0, len(e.Fields)),
		fields:     make(map[string]*Field, len(e.Fields)),
		PrimaryKey: e.PrimaryKey,
		Indexes:    e.Indexes,
	}
	for _, f := range e.Fields {
		if _, ok := t.fields[f.Name]; ok {
			return nil, NewModelError(e.Name, f.Name, "field redeclared", ErrInvalidModel)
		}
		tf := &Field{cfg: c, typ: t, def: f, Name: f.Name}
		t.Fields = append(t.Fields, tf)
		t.fields[f.Name] = tf
	}
	return t, nil
}

// enum returns the declared enum with the given name, or nil.
func (g *Graph) enum(name string) *load.Enum {
	return g.enums[name]
}

// Node returns the graph node with the given entity name, or nil.
func (g *Graph) Node(name string) *Type {
	return g.nodes[name]
}

// Field returns the entity field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	return t.fields[name]
}

// Relations returns the relation fields of the entity in declared order.
func (t *Type) Relations() []*Field {
	var rels []*Field
	for _, f := range t.Fields {
		if f.IsRelation() {
			rels = append(rels, f)
		}
	}
	return rels
}

// ListRelations returns the list-valued relation fields in declared order.
func (t *Type) ListRelations() []*Field {
	var rels []*Field
	for _, f := range t.Relations() {
		if f.IsList() {
			rels = append(rels, f)
		}
	}
	return rels
}

// foreignKeys returns the names of scalar fields that carry a relation's
// foreign key on this entity.
func (t *Type) foreignKeys() map[string]struct{} {
	fks := make(map[string]struct{})
	for _, f := range t.Relations() {
		for _, name := range f.def.RelationFields {
			fks[name] = struct{}{}
		}
	}
	return fks
}

// IsRelation reports whether the field references another entity.
func (f *Field) IsRelation() bool { return f.def.Kind == load.KindRelation }

// IsEnum reports whether the field's type is a declared enum.
func (f *Field) IsEnum() bool { return f.def.Kind == load.KindEnum }

// IsList reports whether the field is multi-valued. A list field is never
// individually nullable; absence is an empty sequence, not null.
func (f *Field) IsList() bool { return f.def.List }

// IsID reports whether the field is an identifier field.
func (f *Field) IsID() bool { return f.def.ID }

// IsUnique reports whether the field is individually unique.
func (f *Field) IsUnique() bool { return f.def.Unique }

// Required reports whether a value must be present.
func (f *Field) Required() bool { return f.def.Required }

// HasDefault reports whether the field carries a default value.
func (f *Field) HasDefault() bool { return f.def.Default }

// Optional reports whether the field may be omitted from payloads:
// it is not required or its value is supplied by a default.
func (f *Field) Optional() bool { return !f.def.Required || f.def.Default }

// RelatedName returns the related entity name for relation fields.
// Dangling targets are not rejected; references are emitted by name and
// left to the target language to resolve.
func (f *Field) RelatedName() string { return f.def.Type }
