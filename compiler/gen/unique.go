package gen

import (
	"slices"
	"strings"
)

// uniqueGroups enumerates every deduplicated set of field names that
// uniquely identifies an instance of the entity. Candidates come from,
// in emission order: each id or individually-unique field as a singleton,
// each declared unique constraint group, the primary-key group, and, when
// more than one singleton unique field exists, one combined set of all of
// them. Two candidates naming the same field set are the same combination
// regardless of order or declaration source; candidates naming a field
// the entity does not have are dropped.
func (t *Type) uniqueGroups() [][]string {
	var (
		groups [][]string
		seen   = make(map[string]struct{})
	)
	add := func(names []string) {
		if len(names) == 0 {
			return
		}
		var (
			uniq  = make(map[string]struct{}, len(names))
			group = make([]string, 0, len(names))
		)
		for _, n := range names {
			if t.Field(n) == nil {
				return
			}
			if _, ok := uniq[n]; ok {
				continue
			}
			uniq[n] = struct{}{}
			group = append(group, n)
		}
		sorted := slices.Clone(group)
		slices.Sort(sorted)
		key := strings.Join(sorted, "\x00")
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		groups = append(groups, group)
	}
	var uniques []string
	for _, f := range t.Fields {
		if f.IsID() || f.IsUnique() {
			add([]string{f.Name})
		}
		if f.IsUnique() {
			uniques = append(uniques, f.Name)
		}
	}
	for _, idx := range t.Indexes {
		if idx.Unique {
			add(idx.Fields)
		}
	}
	add(t.PrimaryKey)
	if len(uniques) > 1 {
		add(uniques)
	}
	return groups
}
