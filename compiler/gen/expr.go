package gen

import "strings"

// expr is a validation expression in canonical call-chain form: a base
// token followed by an ordered list of trailing modifier calls. Expressions
// stay in this form through the whole build pipeline and are serialized to
// text only at emission.
type expr struct {
	base  string
	calls []call
}

// call is one trailing modifier call in a chain.
type call struct {
	name string
	args string
}

// String serializes the expression. Calls always serialize in call form,
// so a bare primitive token such as "z.string" comes out as "z.string()".
func (e *expr) String() string {
	var b strings.Builder
	b.WriteString(e.base)
	for _, c := range e.calls {
		b.WriteByte('.')
		b.WriteString(c.name)
		b.WriteByte('(')
		b.WriteString(c.args)
		b.WriteByte(')')
	}
	return b.String()
}

// push appends a trailing modifier call.
func (e *expr) push(name, args string) {
	e.calls = append(e.calls, call{name: name, args: args})
}

// has reports whether the chain already carries a call with the given
// name, either as a parsed call or textually inside an opaque base.
func (e *expr) has(name string) bool {
	for _, c := range e.calls {
		if c.name == name {
			return true
		}
	}
	return strings.Contains(e.base, "."+name+"(")
}

// isArray reports whether the expression already evaluates to an array
// schema, either through a trailing .array() modifier or an array
// constructor base.
func (e *expr) isArray(ns string) bool {
	return e.has("array") || strings.HasPrefix(e.base, ns+".array(")
}

// wrapArray returns the expression wrapped in the array constructor.
func (e *expr) wrapArray(ns string) *expr {
	return &expr{base: ns + ".array(" + e.String() + ")"}
}

// normalize rewrites any array-wrapper call that encloses a leading
// dot-chain into a trailing modifier: array(.min(1)) becomes .min(1).array().
// The rewrite is stable under repeated application; a rewritten array()
// call has no leading-dot argument left to match.
func (e *expr) normalize() {
	for changed := true; changed; {
		changed = false
		for i, c := range e.calls {
			args := strings.TrimSpace(c.args)
			if c.name != "array" || !strings.HasPrefix(args, ".") {
				continue
			}
			inner := parseCalls(args)
			rewritten := make([]call, 0, len(e.calls)+len(inner))
			rewritten = append(rewritten, e.calls[:i]...)
			rewritten = append(rewritten, inner...)
			rewritten = append(rewritten, call{name: "array"})
			rewritten = append(rewritten, e.calls[i+1:]...)
			e.calls = rewritten
			changed = true
			break
		}
	}
}

// parseChain parses a dot-chain expression into its base token and
// trailing calls. Dots inside parentheses, brackets, braces or string
// literals do not split segments.
func parseChain(s string) *expr {
	segs := splitChain(s)
	e := &expr{base: segs[0]}
	for _, seg := range segs[1:] {
		e.calls = append(e.calls, parseCall(seg))
	}
	return e
}

// parseCalls parses a leading-dot modifier chain such as ".min(1).max(2)".
func parseCalls(s string) []call {
	segs := splitChain(s)
	calls := make([]call, 0, len(segs))
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		calls = append(calls, parseCall(seg))
	}
	return calls
}

func parseCall(seg string) call {
	if i := strings.IndexByte(seg, '('); i >= 0 && strings.HasSuffix(seg, ")") {
		return call{name: seg[:i], args: seg[i+1 : len(seg)-1]}
	}
	return call{name: seg}
}

func splitChain(s string) []string {
	var (
		segs  []string
		depth int
		start int
		quote byte
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote && s[i-1] != '\\' {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			depth--
		case ch == '.' && depth == 0:
			segs = append(segs, s[start:i])
			start = i + 1
		}
	}
	return append(segs, s[start:])
}

// overrideMarker starts an author override expression in a field's doc
// string. Doc strings that do not start with it are ordinary documentation
// and have no effect on the generated expression.
const overrideMarker = "@zod"

// overrideExpr extracts an author override expression from a doc string.
// A remainder ending in a use(...) call is a literal pass-through; a bare
// remainder is a dot-chain prefixed with the schema namespace token when
// not already so prefixed.
func overrideExpr(c *Config, doc string) (*expr, bool) {
	doc = strings.TrimSpace(doc)
	if !strings.HasPrefix(doc, overrideMarker) {
		return nil, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(doc, overrideMarker))
	if rest == "" {
		return nil, false
	}
	switch {
	case strings.HasPrefix(rest, "."):
		rest = c.Namespace + rest
	case rest == c.Namespace || strings.HasPrefix(rest, c.Namespace+"."):
	default:
		rest = c.Namespace + "." + rest
	}
	e := parseChain(rest)
	if n := len(e.calls); n > 0 && e.calls[n-1].name == "use" {
		return parseChain(strings.TrimSpace(e.calls[n-1].args)), true
	}
	return e, true
}
