package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/zodgen/compiler/load"
)

func TestUniqueGroups(t *testing.T) {
	tests := []struct {
		name   string
		entity *load.Entity
		want   [][]string
	}{
		{
			name: "id and one unique field",
			entity: &load.Entity{
				Name: "User",
				Fields: []*load.Field{
					{Name: "id", Type: "Int", ID: true, Required: true},
					{Name: "email", Type: "String", Required: true, Unique: true},
				},
			},
			want: [][]string{{"id"}, {"email"}},
		},
		{
			name: "two unique fields add the combined set",
			entity: &load.Entity{
				Name: "Account",
				Fields: []*load.Field{
					{Name: "email", Type: "String", Required: true, Unique: true},
					{Name: "handle", Type: "String", Required: true, Unique: true},
				},
			},
			want: [][]string{{"email"}, {"handle"}, {"email", "handle"}},
		},
		{
			name: "singleton primary key collapses into the singleton",
			entity: &load.Entity{
				Name: "User",
				Fields: []*load.Field{
					{Name: "id", Type: "Int", ID: true, Required: true},
				},
				PrimaryKey: []string{"id"},
			},
			want: [][]string{{"id"}},
		},
		{
			name: "groups come after singletons, primary key after groups",
			entity: &load.Entity{
				Name: "Member",
				Fields: []*load.Field{
					{Name: "email", Type: "String", Required: true, Unique: true},
					{Name: "orgId", Type: "Int", Required: true},
					{Name: "userId", Type: "Int", Required: true},
				},
				PrimaryKey: []string{"userId", "orgId"},
				Indexes: []*load.Index{
					{Fields: []string{"orgId", "email"}, Unique: true},
				},
			},
			want: [][]string{{"email"}, {"orgId", "email"}, {"userId", "orgId"}},
		},
		{
			name: "duplicate group regardless of order collapses",
			entity: &load.Entity{
				Name: "Pair",
				Fields: []*load.Field{
					{Name: "a", Type: "Int", Required: true},
					{Name: "b", Type: "Int", Required: true},
				},
				PrimaryKey: []string{"b", "a"},
				Indexes: []*load.Index{
					{Fields: []string{"a", "b"}, Unique: true},
				},
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "candidate naming an unknown field is dropped",
			entity: &load.Entity{
				Name: "T",
				Fields: []*load.Field{
					{Name: "id", Type: "Int", ID: true, Required: true},
				},
				Indexes: []*load.Index{
					{Fields: []string{"id", "ghost"}, Unique: true},
				},
			},
			want: [][]string{{"id"}},
		},
		{
			name: "non-unique index does not participate",
			entity: &load.Entity{
				Name: "T",
				Fields: []*load.Field{
					{Name: "id", Type: "Int", ID: true, Required: true},
					{Name: "x", Type: "Int", Required: true},
				},
				Indexes: []*load.Index{
					{Fields: []string{"x"}},
				},
			},
			want: [][]string{{"id"}},
		},
		{
			name: "no unique fields at all",
			entity: &load.Entity{
				Name: "Log",
				Fields: []*load.Field{
					{Name: "line", Type: "String", Required: true},
				},
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t, &load.Model{Entities: []*load.Entity{tt.entity}})
			require.Equal(t, tt.want, g.Nodes[0].uniqueGroups())
		})
	}
}

func TestUniqueGroupsManySingletons(t *testing.T) {
	// N individually-unique fields and no declared groups yield exactly
	// N singletons plus one combined all-N set.
	entity := &load.Entity{
		Name: "T",
		Fields: []*load.Field{
			{Name: "a", Type: "String", Required: true, Unique: true},
			{Name: "b", Type: "String", Required: true, Unique: true},
			{Name: "c", Type: "String", Required: true, Unique: true},
		},
	}
	g := newTestGraph(t, &load.Model{Entities: []*load.Entity{entity}})
	groups := g.Nodes[0].uniqueGroups()
	require.Len(t, groups, 4)
	require.Equal(t, []string{"a", "b", "c"}, groups[3])
}
