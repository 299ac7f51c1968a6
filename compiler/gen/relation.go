package gen

import "fmt"

// Names of the generic helper definitions emitted once per document.
const (
	listFilterHelper = "listRelationFilter"
	includeHelper    = "includeArg"
	orderHelper      = "orderDirection"
)

// ref returns a reference to one of the target entity's schemas. The
// reference is deferred whenever the target is the entity currently being
// generated or has not been fully emitted yet in this pass; a direct
// binding would recurse through the relation cycle at schema-construction
// time. Direct binding for already-emitted targets is an optimization
// only; deferring unconditionally would be equally correct.
func (p *pass) ref(current *Type, target, name string) string {
	if target != current.Name {
		if _, ok := p.emitted[target]; ok {
			return name
		}
	}
	return fmt.Sprintf("%s.lazy(() => %s)", p.cfg.Namespace, name)
}

// filterRef returns the filter-predicate fragment for a relation field.
// List relations quantify over the related filter with the some/every/none
// combinator; singular relations reference it directly.
func (f *Field) filterRef(p *pass) string {
	ref := p.ref(f.typ, f.RelatedName(), f.cfg.whereName(f.RelatedName()))
	if f.IsList() {
		return fmt.Sprintf("%s(%s)", listFilterHelper, ref)
	}
	return ref
}

// includeExpr returns the inclusion directive for a relation field: a
// boolean flag or a selector object. The selector shape is reserved for
// nested-argument support.
func (f *Field) includeExpr() string {
	ns := f.cfg.Namespace
	return fmt.Sprintf("%s(%s.record(%s.unknown())).optional()", includeHelper, ns, ns)
}

// connectExpr returns the nested create payload for a relation field: a
// connect-by-unique-key reference. List relations accept one reference or
// an array of references and are always optional; singular relations
// follow the field's own required and default rules.
func (f *Field) connectExpr(p *pass) string {
	ns := f.cfg.Namespace
	ref := p.ref(f.typ, f.RelatedName(), f.cfg.whereUniqueName(f.RelatedName()))
	connect := ref
	if f.IsList() {
		connect = fmt.Sprintf("%s.union([%s, %s.array(%s)])", ns, ref, ns, ref)
	}
	e := &expr{base: fmt.Sprintf("%s.object({ connect: %s })", ns, connect)}
	if f.IsList() || f.Optional() {
		e.push("optional", "")
	}
	return e.String()
}
