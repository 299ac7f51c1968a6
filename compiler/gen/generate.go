package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/zodgen/compiler/load"
)

// pass is the mutable state of one generation run: the accumulating body
// writer, the enums referenced by at least one emitted field in first-use
// order, and the names of entities already fully emitted. A pass is
// created empty per Generate call, populated by side effect as entities
// are processed, and discarded once the document is assembled.
type pass struct {
	cfg     *Config
	graph   *Graph
	body    *Writer
	enums   []*load.Enum
	used    map[string]struct{}
	emitted map[string]struct{}
}

// useEnum records an enum reference. Each enum is emitted once no matter
// how many fields reference it.
func (p *pass) useEnum(en *load.Enum) {
	if _, ok := p.used[en.Name]; ok {
		return
	}
	p.used[en.Name] = struct{}{}
	p.enums = append(p.enums, en)
}

// Generate produces the full schema document for the graph: import
// preamble, used enum schemas, the generic helpers, then one block per
// entity in model order.
//
// The pass is single-threaded by design. Relation references bind directly
// only to entities emitted earlier in the same pass, so entity order is
// observable and the shared pass state must not be written concurrently.
func Generate(g *Graph) (string, error) {
	if g == nil || g.Config == nil {
		return "", NewConfigError("Graph", nil, "missing generation graph or config")
	}
	p := &pass{
		cfg:     g.Config,
		graph:   g,
		body:    NewWriter(),
		used:    make(map[string]struct{}),
		emitted: make(map[string]struct{}),
	}
	for _, t := range g.Nodes {
		t.generate(p)
		p.emitted[t.Name] = struct{}{}
	}
	doc := NewWriter()
	if g.Header != "" {
		doc.P("%s", g.Header)
		doc.Blank()
	}
	doc.P("import * as %s from %q", g.Namespace, g.Import)
	doc.Blank()
	for _, en := range p.enums {
		values := make([]string, len(en.Values))
		for i, v := range en.Values {
			values[i] = fmt.Sprintf("%q", v)
		}
		doc.P("export const %s = %s.enum([%s])", g.schemaName(en.Name), g.Namespace, strings.Join(values, ", "))
		doc.Blank()
	}
	ns := g.Namespace
	doc.P("const %s = <T extends %s.ZodTypeAny>(where: T) =>", listFilterHelper, ns)
	doc.In()
	doc.P("%s.object({ some: where.optional(), every: where.optional(), none: where.optional() })", ns)
	doc.Out()
	doc.Blank()
	doc.P("const %s = <T extends %s.ZodTypeAny>(selector: T) => %s.union([%s.boolean(), selector])", includeHelper, ns, ns, ns)
	doc.Blank()
	doc.P(`const %s = %s.enum(["asc", "desc"])`, orderHelper, ns)
	doc.Blank()
	doc.Append(p.body)
	return doc.String(), nil
}

// generate emits all schema definitions for one entity in fixed order:
// object schema, filter predicate, unique lookup, inclusion directive,
// create input, update input, then the operation argument bundles.
func (t *Type) generate(p *pass) {
	t.objectSchema(p)
	t.whereSchema(p)
	t.whereUniqueSchema(p)
	t.includeSchema(p)
	t.createInputSchema(p)
	t.updateInputSchema(p)
	t.argsSchemas(p)
}

func (t *Type) objectSchema(p *pass) {
	w := p.body
	w.P("export const %s = %s.object({", t.schemaName(t.Name), t.Namespace)
	w.In()
	for _, f := range t.Fields {
		if f.IsRelation() {
			continue
		}
		w.P("%s: %s,", f.Name, f.expression(p))
	}
	w.Out()
	w.P("})")
	w.Blank()
}

// whereSchema emits the filter predicate: a forward-referencing alias
// resolved lazily, then the object body. The alias lets self- and mutually
// recursive relation references type-check in the emitted document.
func (t *Type) whereSchema(p *pass) {
	w := p.body
	name := t.whereName(t.Name)
	obj := t.whereObjectName(t.Name)
	w.P("export const %s: %s.ZodType = %s.lazy(() => %s)", name, t.Namespace, t.Namespace, obj)
	w.Blank()
	w.P("const %s = %s.object({", obj, t.Namespace)
	w.In()
	for _, f := range t.Fields {
		if f.IsRelation() {
			w.P("%s: %s.optional(),", f.Name, f.filterRef(p))
		} else {
			w.P("%s: %s,", f.Name, f.filterExpr(p))
		}
	}
	w.Out()
	w.P("})")
	w.Blank()
}

// whereUniqueSchema emits the unique-lookup schema: each combination as an
// intersection of its key object with the general filter, unioned across
// combinations. A single combination emits the bare intersection; an
// entity with no unique fields degenerates to the filter itself.
func (t *Type) whereUniqueSchema(p *pass) {
	w := p.body
	name := t.whereUniqueName(t.Name)
	where := t.whereName(t.Name)
	groups := t.uniqueGroups()
	switch len(groups) {
	case 0:
		w.P("export const %s = %s", name, where)
	case 1:
		w.P("export const %s = %s.and(%s)", name, t.groupExpr(p, groups[0]), where)
	default:
		w.P("export const %s = %s.union([", name, t.Namespace)
		w.In()
		for _, group := range groups {
			w.P("%s.and(%s),", t.groupExpr(p, group), where)
		}
		w.Out()
		w.P("])")
	}
	w.Blank()
}

// groupExpr builds the lookup object for one unique combination.
func (t *Type) groupExpr(p *pass, names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s: %s", n, t.Field(n).keyExpr(p))
	}
	return fmt.Sprintf("%s.object({ %s })", t.Namespace, strings.Join(parts, ", "))
}

func (t *Type) includeSchema(p *pass) {
	w, ns := p.body, t.Namespace
	w.P("export const %s = %s.object({", t.includeName(t.Name), ns)
	w.In()
	for _, f := range t.Relations() {
		w.P("%s: %s,", f.Name, f.includeExpr())
	}
	if lists := t.ListRelations(); len(lists) > 0 {
		selectors := make([]string, len(lists))
		for i, f := range lists {
			selectors[i] = fmt.Sprintf("%s: %s.boolean().optional()", f.Name, ns)
		}
		w.P("_count: %s(%s.object({ select: %s.object({ %s }) })).optional(),",
			includeHelper, ns, ns, strings.Join(selectors, ", "))
	}
	w.Out()
	w.P("})")
	w.Blank()
}

// createInputSchema emits the create payload: the object shape minus
// identifier fields and relation foreign-key carriers, extended with
// connect payloads per relation. Nested creates are not generated; they
// would reintroduce the owning entity as a nested target and recurse
// without bound.
func (t *Type) createInputSchema(p *pass) {
	w := p.body
	fks := t.foreignKeys()
	w.P("export const %s = %s.object({", t.createInputName(t.Name), t.Namespace)
	w.In()
	for _, f := range t.Fields {
		switch {
		case f.IsRelation():
			w.P("// %s: nested create omitted, connect by unique key", f.Name)
			w.P("%s: %s,", f.Name, f.connectExpr(p))
		case f.IsID():
		case hasKey(fks, f.Name):
		default:
			w.P("%s: %s,", f.Name, f.expression(p))
		}
	}
	w.Out()
	w.P("})")
	w.Blank()
}

// updateInputSchema derives the update payload from the create payload by
// making every top-level field independently optional.
func (t *Type) updateInputSchema(p *pass) {
	w := p.body
	w.P("export const %s = %s.partial()", t.updateInputName(t.Name), t.createInputName(t.Name))
	w.Blank()
}

// argsSchemas emits the five operation argument bundles.
func (t *Type) argsSchemas(p *pass) {
	w, ns := p.body, t.Namespace
	where := t.whereName(t.Name)
	unique := t.whereUniqueName(t.Name)
	include := t.includeName(t.Name)

	w.P("export const %s = %s.object({", t.findManyName(t.Name), ns)
	w.In()
	w.P("where: %s.optional(),", where)
	w.P("orderBy: %s.record(%s).optional(),", ns, orderHelper)
	w.P("cursor: %s.optional(),", unique)
	w.P("take: %s.number().int().optional(),", ns)
	w.P("skip: %s.number().int().optional(),", ns)
	w.P("include: %s.optional().default({}),", include)
	w.Out()
	w.P("})")
	w.Blank()

	w.P("export const %s = %s.object({", t.findUniqueName(t.Name), ns)
	w.In()
	w.P("where: %s,", unique)
	w.P("include: %s.optional(),", include)
	w.Out()
	w.P("})")
	w.Blank()

	w.P("export const %s = %s.object({", t.createArgsName(t.Name), ns)
	w.In()
	w.P("data: %s,", t.createInputName(t.Name))
	w.P("include: %s.optional(),", include)
	w.Out()
	w.P("})")
	w.Blank()

	w.P("export const %s = %s.object({", t.updateArgsName(t.Name), ns)
	w.In()
	w.P("where: %s,", unique)
	w.P("data: %s,", t.updateInputName(t.Name))
	w.P("include: %s.optional(),", include)
	w.Out()
	w.P("})")
	w.Blank()

	w.P("export const %s = %s.object({", t.deleteArgsName(t.Name), ns)
	w.In()
	w.P("where: %s,", unique)
	w.P("include: %s.optional(),", include)
	w.Out()
	w.P("})")
	w.Blank()
}

func hasKey(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}
