package spec

import (
	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// ParameterSpec is a function or constructor parameter
type ParameterSpec struct {
	name         string
	typ          tstype.TypeName
	optional     bool
	defaultValue codeblock.CodeBlock
	decorators   []DecoratorSpec
	modifiers    []Modifier
}

func (p ParameterSpec) Name() string                      { return p.name }
func (p ParameterSpec) Type() tstype.TypeName             { return p.typ }
func (p ParameterSpec) Optional() bool                    { return p.optional }
func (p ParameterSpec) DefaultValue() codeblock.CodeBlock { return p.defaultValue }
func (p ParameterSpec) Decorators() []DecoratorSpec       { return cloneSlice(p.decorators) }
func (p ParameterSpec) Modifiers() []Modifier             { return cloneSlice(p.modifiers) }

// emit writes the parameter. When optionalAllowed is false an optional
// parameter is written as `name: T | undefined` instead of `name?: T`.
func (p ParameterSpec) emit(w *CodeWriter, scope *tstype.Scope, isRest, optionalAllowed bool) {
	w.EmitDecorators(p.decorators, true, scope)
	w.EmitModifiers(p.modifiers)
	if isRest {
		w.Emit("...")
	}
	w.Emit(p.name)
	emitTypeAnnotation(w, scope, p.typ, p.optional && !isRest, optionalAllowed)
	p.emitDefaultValue(w, scope)
}

func (p ParameterSpec) emitDefaultValue(w *CodeWriter, scope *tstype.Scope) {
	if p.defaultValue.IsEmpty() {
		return
	}
	w.Emit(" = ")
	w.EmitCode(p.defaultValue, scope)
}

// emitTypeAnnotation writes `?: T`, `: T | undefined` or `: T`
func emitTypeAnnotation(w *CodeWriter, scope *tstype.Scope, typ tstype.TypeName, optional, compact bool) {
	if optional && (compact || typ == nil) {
		w.Emit("?")
	}
	if typ == nil {
		return
	}
	if optional && !compact {
		typ = tstype.Optional(typ)
	}
	w.Emit(": " + typ.Render(scope))
}

// ToBuilder returns a builder seeded with p
func (p ParameterSpec) ToBuilder() *ParameterBuilder {
	return &ParameterBuilder{
		name:         p.name,
		typ:          p.typ,
		optional:     p.optional,
		defaultValue: p.defaultValue,
		decorators:   cloneSlice(p.decorators),
		modifiers:    cloneSlice(p.modifiers),
	}
}

// ParameterBuilder builds a ParameterSpec
type ParameterBuilder struct {
	name         string
	typ          tstype.TypeName
	optional     bool
	defaultValue codeblock.CodeBlock
	decorators   []DecoratorSpec
	modifiers    []Modifier
	err          error
}

// NewParameterBuilder starts a parameter. typ may be nil for an untyped parameter.
func NewParameterBuilder(name string, typ tstype.TypeName) *ParameterBuilder {
	return &ParameterBuilder{name: name, typ: typ}
}

// NewParameter builds a plain parameter
func NewParameter(name string, typ tstype.TypeName, optional bool) (ParameterSpec, error) {
	return NewParameterBuilder(name, typ).Optional(optional).Build()
}

func (b *ParameterBuilder) Optional(optional bool) *ParameterBuilder {
	b.optional = optional
	return b
}

// DefaultValue sets the parameter's default value expression
func (b *ParameterBuilder) DefaultValue(format string, args ...interface{}) *ParameterBuilder {
	value, err := codeblock.Of(format, args...)
	if err != nil {
		b.err = errors.CombineErrors(b.err, err)
		return b
	}
	b.defaultValue = value
	return b
}

func (b *ParameterBuilder) DefaultValueCode(value codeblock.CodeBlock) *ParameterBuilder {
	b.defaultValue = value
	return b
}

func (b *ParameterBuilder) AddDecorators(decorators ...DecoratorSpec) *ParameterBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *ParameterBuilder) AddModifiers(modifiers ...Modifier) *ParameterBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

// Build validates and returns the ParameterSpec
func (b *ParameterBuilder) Build() (ParameterSpec, error) {
	if b.err != nil {
		return ParameterSpec{}, b.err
	}
	if b.name == "" {
		return ParameterSpec{}, errors.NewInvalidNameError("parameter requires a name")
	}
	if err := checkModifiers("parameter "+b.name, parameterModifiers, b.modifiers); err != nil {
		return ParameterSpec{}, err
	}
	if b.optional && !b.defaultValue.IsEmpty() {
		return ParameterSpec{}, errors.NewConflictError("parameter %s cannot be optional and have a default value", b.name)
	}
	return ParameterSpec{
		name:         b.name,
		typ:          b.typ,
		optional:     b.optional,
		defaultValue: b.defaultValue,
		decorators:   cloneSlice(b.decorators),
		modifiers:    canonical(b.modifiers),
	}, nil
}
