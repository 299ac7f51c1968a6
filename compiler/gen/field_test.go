package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/zodgen/compiler/load"
)

// newTestGraph builds a graph with default config for the given model.
func newTestGraph(t *testing.T, m *load.Model) *Graph {
	t.Helper()
	cfg, err := NewConfig()
	require.NoError(t, err)
	g, err := NewGraph(cfg, m)
	require.NoError(t, err)
	return g
}

// newTestPass creates a fresh generation pass for the graph.
func newTestPass(g *Graph) *pass {
	return &pass{
		cfg:     g.Config,
		graph:   g,
		body:    NewWriter(),
		used:    make(map[string]struct{}),
		emitted: make(map[string]struct{}),
	}
}

func TestFieldExpressionModifiers(t *testing.T) {
	tests := []struct {
		name  string
		field *load.Field
		want  string
	}{
		{
			name:  "required non-defaulted has no modifiers",
			field: &load.Field{Name: "email", Type: "String", Required: true},
			want:  "z.string()",
		},
		{
			name:  "not required adds nullable and optional",
			field: &load.Field{Name: "name", Type: "String"},
			want:  "z.string().nullable().optional()",
		},
		{
			name:  "required with default adds optional only",
			field: &load.Field{Name: "age", Type: "Int", Required: true, Default: true},
			want:  "z.number().int().optional()",
		},
		{
			name:  "list suppresses nullable regardless of required",
			field: &load.Field{Name: "tags", Type: "String", List: true},
			want:  "z.array(z.string()).optional()",
		},
		{
			name:  "required list has no modifiers",
			field: &load.Field{Name: "tags", Type: "String", List: true, Required: true},
			want:  "z.array(z.string())",
		},
		{
			name:  "unmapped scalar falls back to any",
			field: &load.Field{Name: "blob", Type: "Geometry", Required: true},
			want:  "z.any()",
		},
		{
			name:  "bytes",
			field: &load.Field{Name: "data", Type: "Bytes", Required: true},
			want:  "z.instanceof(Uint8Array)",
		},
		{
			name:  "datetime",
			field: &load.Field{Name: "createdAt", Type: "DateTime", Required: true, Default: true},
			want:  "z.date().optional()",
		},
		{
			name:  "override replaces default mapping",
			field: &load.Field{Name: "email", Type: "String", Required: true, Doc: "@zod.string.email()"},
			want:  "z.string().email()",
		},
		{
			name:  "override with modifiers already present is not doubled",
			field: &load.Field{Name: "nick", Type: "String", Doc: "@zod.string.min(2).nullable()"},
			want:  "z.string().min(2).nullable().optional()",
		},
		{
			name:  "list override with array rewrite",
			field: &load.Field{Name: "tags", Type: "String", List: true, Required: true, Doc: "@zod.string.min(1).array()"},
			want:  "z.string().min(1).array()",
		},
		{
			name:  "malformed doc is ignored",
			field: &load.Field{Name: "note", Type: "String", Required: true, Doc: "free-form comment"},
			want:  "z.string()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t, &load.Model{Entities: []*load.Entity{
				{Name: "T", Fields: []*load.Field{tt.field}},
			}})
			p := newTestPass(g)
			f := g.Nodes[0].Field(tt.field.Name)
			require.Equal(t, tt.want, f.expression(p).String())
		})
	}
}

func TestEnumFieldExpression(t *testing.T) {
	require := require.New(t)
	m := &load.Model{
		Enums: []*load.Enum{
			{Name: "Role", Values: []string{"ADMIN", "USER"}},
			{Name: "Empty"},
		},
		Entities: []*load.Entity{{
			Name: "User",
			Fields: []*load.Field{
				{Name: "role", Kind: load.KindEnum, Type: "Role", Required: true},
				{Name: "other", Kind: load.KindEnum, Type: "Role", Required: true},
				{Name: "empty", Kind: load.KindEnum, Type: "Empty", Required: true},
				{Name: "unknown", Kind: load.KindEnum, Type: "Missing", Required: true},
			},
		}},
	}
	g := newTestGraph(t, m)
	p := newTestPass(g)
	typ := g.Nodes[0]

	require.Equal("RoleSchema", typ.Field("role").expression(p).String())

	// Empty or unknown enums fall back to a plain string expression.
	require.Equal("z.string()", typ.Field("empty").expression(p).String())
	require.Equal("z.string()", typ.Field("unknown").expression(p).String())

	// Referencing the enum twice records it once.
	require.Equal("RoleSchema", typ.Field("other").expression(p).String())
	require.Len(p.enums, 1)
	require.Equal("Role", p.enums[0].Name)
}

func TestFilterAndKeyExpressions(t *testing.T) {
	require := require.New(t)
	g := newTestGraph(t, &load.Model{Entities: []*load.Entity{{
		Name: "User",
		Fields: []*load.Field{
			{Name: "id", Type: "Int", ID: true, Required: true},
			{Name: "name", Type: "String"},
		},
	}}})
	p := newTestPass(g)
	typ := g.Node("User")
	require.NotNil(typ)
	require.Nil(g.Node("Missing"))

	// Filter fields are always optional.
	require.Equal("z.number().int().optional()", typ.Field("id").filterExpr(p).String())
	require.Equal("z.string().nullable().optional()", typ.Field("name").filterExpr(p).String())

	// Lookup keys carry neither nullable nor optional.
	require.Equal("z.number().int()", typ.Field("id").keyExpr(p).String())
	require.Equal("z.string()", typ.Field("name").keyExpr(p).String())
}
