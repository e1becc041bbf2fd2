// Package tstype models TypeScript type references.
//
// A TypeName is an immutable value that knows how to render itself against a
// Scope. Rendering a Named reference with a module registers an import in the
// scope and yields the local name the file should use, which may be an alias
// when two modules export the same symbol.
package tstype

import (
	"reflect"
	"strings"
)

// TypeName is a reference to a TypeScript type
type TypeName interface {
	// Render returns the reference as it must appear in code emitted within scope.
	// A nil scope renders without import tracking.
	Render(scope *Scope) string

	// String returns the reference without import tracking
	String() string
}

// Standard is a built-in type such as string or void
type Standard struct {
	Name string
}

// Built-in types
var (
	String    = Standard{Name: "string"}
	Number    = Standard{Name: "number"}
	Boolean   = Standard{Name: "boolean"}
	Any       = Standard{Name: "any"}
	Unknown   = Standard{Name: "unknown"}
	Void      = Standard{Name: "void"}
	Never     = Standard{Name: "never"}
	Object    = Standard{Name: "object"}
	Null      = Standard{Name: "null"}
	Undefined = Standard{Name: "undefined"}
	BigInt    = Standard{Name: "bigint"}
	Symbol    = Standard{Name: "symbol"}
	This      = Standard{Name: "this"}
)

var standardNames = map[string]Standard{
	"string":    String,
	"number":    Number,
	"boolean":   Boolean,
	"any":       Any,
	"unknown":   Unknown,
	"void":      Void,
	"never":     Never,
	"object":    Object,
	"null":      Null,
	"undefined": Undefined,
	"bigint":    BigInt,
	"symbol":    Symbol,
	"this":      This,
}

// LookupStandard returns the built-in type with the given name
func LookupStandard(name string) (Standard, bool) {
	s, ok := standardNames[name]
	return s, ok
}

func (s Standard) Render(*Scope) string { return s.Name }
func (s Standard) String() string       { return s.Name }

// Named is a declared type. When From is set the type is imported from that
// module; otherwise it is expected to be declared in the same file.
type Named struct {
	Name string
	From string
}

// Imported returns a reference to name exported by module from
func Imported(name, from string) Named {
	return Named{Name: name, From: from}
}

// Local returns a reference to a type declared in the emitting file
func Local(name string) Named {
	return Named{Name: name}
}

func (n Named) Render(scope *Scope) string {
	if n.From == "" || scope == nil {
		return n.Name
	}
	return scope.Import(n.Name, n.From)
}

func (n Named) String() string { return n.Name }

// Parameterized applies type arguments to a generic type: Raw<A, B>
type Parameterized struct {
	Raw  TypeName
	Args []TypeName
}

// Generic returns raw applied to args
func Generic(raw TypeName, args ...TypeName) Parameterized {
	return Parameterized{Raw: raw, Args: args}
}

func (p Parameterized) Render(scope *Scope) string {
	return p.render(func(t TypeName) string { return t.Render(scope) })
}

func (p Parameterized) String() string {
	return p.render(TypeName.String)
}

func (p Parameterized) render(each func(TypeName) string) string {
	var sb strings.Builder
	sb.WriteString(each(p.Raw))
	sb.WriteByte('<')
	for i, arg := range p.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(each(arg))
	}
	sb.WriteByte('>')
	return sb.String()
}

// Array is Elem[]
type Array struct {
	Elem TypeName
}

// ArrayOf returns elem[]
func ArrayOf(elem TypeName) Array {
	return Array{Elem: elem}
}

func (a Array) Render(scope *Scope) string {
	return wrapUnion(a.Elem, a.Elem.Render(scope)) + "[]"
}

func (a Array) String() string {
	return wrapUnion(a.Elem, a.Elem.String()) + "[]"
}

func wrapUnion(t TypeName, rendered string) string {
	if _, ok := t.(Union); ok {
		return "(" + rendered + ")"
	}
	return rendered
}

// Union is A | B | C
type Union struct {
	Types []TypeName
}

// UnionOf returns the union of types
func UnionOf(types ...TypeName) Union {
	return Union{Types: types}
}

// Optional returns t | undefined
func Optional(t TypeName) Union {
	return UnionOf(t, Undefined)
}

func (u Union) Render(scope *Scope) string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.Render(scope)
	}
	return strings.Join(parts, " | ")
}

func (u Union) String() string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

// Literal is a literal type such as 'active' or 42
type Literal struct {
	Text string
}

func (l Literal) Render(*Scope) string { return l.Text }
func (l Literal) String() string       { return l.Text }

// TypeVariable is a generic type parameter. Used as a reference it renders
// its name; Declaration renders the full parameter form.
type TypeVariable struct {
	Name    string
	Bound   TypeName
	Default TypeName
}

// Var returns an unbounded type variable
func Var(name string) TypeVariable {
	return TypeVariable{Name: name}
}

// Extends returns a copy of v bounded by bound
func (v TypeVariable) Extends(bound TypeName) TypeVariable {
	v.Bound = bound
	return v
}

// WithDefault returns a copy of v with a default type argument
func (v TypeVariable) WithDefault(def TypeName) TypeVariable {
	v.Default = def
	return v
}

func (v TypeVariable) Render(*Scope) string { return v.Name }
func (v TypeVariable) String() string       { return v.Name }

// Declaration renders T extends Bound = Default
func (v TypeVariable) Declaration(scope *Scope) string {
	var sb strings.Builder
	sb.WriteString(v.Name)
	if v.Bound != nil {
		sb.WriteString(" extends ")
		sb.WriteString(v.Bound.Render(scope))
	}
	if v.Default != nil {
		sb.WriteString(" = ")
		sb.WriteString(v.Default.Render(scope))
	}
	return sb.String()
}

// Equal reports whether a and b denote the same type reference
func Equal(a, b TypeName) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// SimpleName derives a plain class name from a type reference: the declared
// name for named types, the raw type's name for parameterized types.
func SimpleName(t TypeName) string {
	switch v := t.(type) {
	case Named:
		return v.Name
	case Parameterized:
		return SimpleName(v.Raw)
	case TypeVariable:
		return v.Name
	case nil:
		return ""
	default:
		return t.String()
	}
}
