package gen

// scalarTypes maps declared scalar type names to their default expression
// chains, relative to the schema namespace token.
var scalarTypes = map[string]string{
	"String":   ".string()",
	"Int":      ".number().int()",
	"BigInt":   ".bigint()",
	"Float":    ".number()",
	"Decimal":  ".number()",
	"Boolean":  ".boolean()",
	"DateTime": ".date()",
	"Json":     ".any()",
	"Bytes":    ".instanceof(Uint8Array)",
}

// baseExpr builds the field expression up to and including list wrapping:
// doc override or default type mapping, normalization, then the array
// constructor for list fields. Wrapping happens before nullability and
// optionality so those trailing modifiers apply to the whole expression.
func (f *Field) baseExpr(p *pass) *expr {
	e, ok := overrideExpr(f.cfg, f.def.Doc)
	if !ok {
		e = f.defaultExpr(p)
	}
	e.normalize()
	if f.IsList() && !e.isArray(f.cfg.Namespace) {
		e = e.wrapArray(f.cfg.Namespace)
	}
	return e
}

// expression builds the final validation expression for a scalar or enum
// field as it appears in the entity object schema. List fields are never
// nullable; absence of a list is an empty array, not null.
func (f *Field) expression(p *pass) *expr {
	e := f.baseExpr(p)
	if !f.IsList() && !f.Required() && !e.has("nullable") && !e.has("nullish") {
		e.push("nullable", "")
	}
	if (!f.Required() || f.HasDefault()) && !e.has("optional") {
		e.push("optional", "")
	}
	return e
}

// filterExpr builds the field expression for the filter predicate, where
// every field may be omitted.
func (f *Field) filterExpr(p *pass) *expr {
	e := f.baseExpr(p)
	if !f.IsList() && !f.Required() && !e.has("nullable") && !e.has("nullish") {
		e.push("nullable", "")
	}
	if !e.has("optional") {
		e.push("optional", "")
	}
	return e
}

// keyExpr builds the field expression for a unique-lookup branch. Lookup
// keys are always present, so neither nullable nor optional applies.
func (f *Field) keyExpr(p *pass) *expr {
	return f.baseExpr(p)
}

// defaultExpr maps the declared field type to its default expression.
// Enum fields reference the per-enum schema and record the enum as used in
// the pass state; unknown or empty enums and unmapped scalar types fall
// back to permissive expressions rather than failing generation.
func (f *Field) defaultExpr(p *pass) *expr {
	if f.IsEnum() {
		if en := p.graph.enum(f.def.Type); en != nil && len(en.Values) > 0 {
			p.useEnum(en)
			return &expr{base: f.cfg.schemaName(en.Name)}
		}
		return parseChain(f.cfg.Namespace + ".string()")
	}
	if chain, ok := scalarTypes[f.def.Type]; ok {
		return parseChain(f.cfg.Namespace + chain)
	}
	return parseChain(f.cfg.Namespace + ".any()")
}
