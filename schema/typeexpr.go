package schema

import (
	"strings"
	"unicode"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// ParseType parses a TypeScript type expression such as
// `Map<string, User[]> | undefined`. Names found in imports become imported
// references; other names are builtins or local to the module.
//
// Supported forms are names, qualified names, generic applications,
// arrays, unions, parentheses, and string, number or boolean literals.
func ParseType(expr string, imports map[string]string) (tstype.TypeName, error) {
	return newResolver(imports).parse(expr)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLiteral
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '.'
}

func scanType(expr string) ([]token, error) {
	var toks []token
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case strings.ContainsRune("<>,|[]()", r):
			toks = append(toks, token{kind: tokPunct, text: string(r), pos: i})
			i++
		case isIdentStart(r):
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		case unicode.IsDigit(r) || (r == '-' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			i++
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.' || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokLiteral, text: string(runes[start:i]), pos: start})
		case r == '\'' || r == '"' || r == '`':
			start := i
			i++
			for i < len(runes) && runes[i] != r {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(runes) {
				return nil, typeError(expr, start, "unterminated string literal")
			}
			i++
			toks = append(toks, token{kind: tokLiteral, text: string(runes[start:i]), pos: start})
		default:
			return nil, typeError(expr, i, "unexpected %q", r)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(runes)}), nil
}

func typeError(expr string, pos int, format string, args ...interface{}) error {
	return errors.Mark(
		errors.Wrapf(errors.Newf(format, args...), "type %q at offset %d", expr, pos),
		errors.ErrInvalidDescription,
	)
}

type typeParser struct {
	expr    string
	toks    []token
	pos     int
	resolve func(name string) tstype.TypeName
}

func (p *typeParser) peek() token { return p.toks[p.pos] }

func (p *typeParser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *typeParser) accept(punct string) bool {
	if t := p.peek(); t.kind == tokPunct && t.text == punct {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(punct string) error {
	if p.accept(punct) {
		return nil
	}
	t := p.peek()
	if t.kind == tokEOF {
		return typeError(p.expr, t.pos, "expected %q, got end of type", punct)
	}
	return typeError(p.expr, t.pos, "expected %q, got %q", punct, t.text)
}

// union = ["|"] array { "|" array }
func (p *typeParser) union() (tstype.TypeName, error) {
	p.accept("|")
	first, err := p.array()
	if err != nil {
		return nil, err
	}
	types := []tstype.TypeName{first}
	for p.accept("|") {
		t, err := p.array()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if len(types) == 1 {
		return first, nil
	}
	return tstype.UnionOf(types...), nil
}

// array = primary { "[" "]" }
func (p *typeParser) array() (tstype.TypeName, error) {
	t, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.accept("[") {
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		t = tstype.ArrayOf(t)
	}
	return t, nil
}

// primary = "(" union ")" | literal | name [ "<" union { "," union } ">" ]
func (p *typeParser) primary() (tstype.TypeName, error) {
	t := p.next()
	switch t.kind {
	case tokLiteral:
		return tstype.Literal{Text: t.text}, nil
	case tokIdent:
		if t.text == "true" || t.text == "false" {
			return tstype.Literal{Text: t.text}, nil
		}
		name := p.resolve(t.text)
		if !p.accept("<") {
			return name, nil
		}
		var args []tstype.TypeName
		for {
			arg, err := p.union()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.accept(",") {
				break
			}
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return tstype.Generic(name, args...), nil
	case tokPunct:
		if t.text == "(" {
			inner, err := p.union()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
		return nil, typeError(p.expr, t.pos, "unexpected %q", t.text)
	}
	return nil, typeError(p.expr, t.pos, "unexpected end of type")
}

// resolver maps names in type expressions to references
type resolver struct {
	imports map[string]string
	vars    map[string]bool
}

func newResolver(imports map[string]string) resolver {
	return resolver{imports: imports, vars: map[string]bool{}}
}

// with returns a resolver that also sees the type parameters params
func (r resolver) with(params []TypeParam) resolver {
	if len(params) == 0 {
		return r
	}
	vars := make(map[string]bool, len(r.vars)+len(params))
	for name := range r.vars {
		vars[name] = true
	}
	for _, tp := range params {
		vars[tp.Name] = true
	}
	return resolver{imports: r.imports, vars: vars}
}

func (r resolver) name(name string) tstype.TypeName {
	if r.vars[name] {
		return tstype.Var(name)
	}
	if std, ok := tstype.LookupStandard(name); ok {
		return std
	}
	if from, ok := r.imports[name]; ok {
		return tstype.Imported(name, from)
	}
	return tstype.Local(name)
}

func (r resolver) parse(expr string) (tstype.TypeName, error) {
	toks, err := scanType(expr)
	if err != nil {
		return nil, err
	}
	p := &typeParser{expr: expr, toks: toks, resolve: r.name}
	if p.peek().kind == tokEOF {
		return nil, typeError(expr, 0, "empty type")
	}
	t, err := p.union()
	if err != nil {
		return nil, err
	}
	if rest := p.peek(); rest.kind != tokEOF {
		return nil, typeError(expr, rest.pos, "unexpected %q", rest.text)
	}
	return t, nil
}

// parseOptional parses expr, or returns nil for an empty expression
func (r resolver) parseOptional(expr string) (tstype.TypeName, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return r.parse(expr)
}
