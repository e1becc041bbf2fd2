package spec

import (
	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// PropertySpec is a class property declaration
type PropertySpec struct {
	name        string
	typ         tstype.TypeName
	doc         codeblock.CodeBlock
	decorators  []DecoratorSpec
	modifiers   []Modifier
	optional    bool
	initializer codeblock.CodeBlock
}

func (p PropertySpec) Name() string                     { return p.name }
func (p PropertySpec) Type() tstype.TypeName            { return p.typ }
func (p PropertySpec) Doc() codeblock.CodeBlock         { return p.doc }
func (p PropertySpec) Decorators() []DecoratorSpec      { return cloneSlice(p.decorators) }
func (p PropertySpec) Modifiers() []Modifier            { return cloneSlice(p.modifiers) }
func (p PropertySpec) Optional() bool                   { return p.optional }
func (p PropertySpec) Initializer() codeblock.CodeBlock { return p.initializer }

// HasInitializer reports whether the property is assigned where it is declared
func (p PropertySpec) HasInitializer() bool { return !p.initializer.IsEmpty() }

type propertyStyle struct {
	implicit        []Modifier
	extra           []Modifier
	asStatement     bool
	withInitializer bool
	compactOptional bool
	// inside a parameter list: documentation and decorators stay on the line
	inline bool
}

func (p PropertySpec) emit(w *CodeWriter, scope *tstype.Scope, style propertyStyle) {
	if style.inline {
		w.EmitInlineDoc(p.doc, scope)
	} else {
		w.EmitDoc(p.doc, scope)
	}
	w.EmitDecorators(p.decorators, style.inline, scope)
	w.EmitModifiers(union(p.modifiers, style.extra...), style.implicit...)
	w.Emit(p.name)
	emitTypeAnnotation(w, scope, p.typ, p.optional, style.compactOptional)
	if style.withInitializer && p.HasInitializer() {
		w.Emit(" = ")
		w.EmitCode(p.initializer, scope)
	}
	if style.asStatement {
		w.Emit(";\n")
	}
}

// ToBuilder returns a builder seeded with p
func (p PropertySpec) ToBuilder() *PropertyBuilder {
	b := &PropertyBuilder{
		name:        p.name,
		typ:         p.typ,
		doc:         p.doc.ToBuilder(),
		decorators:  cloneSlice(p.decorators),
		modifiers:   cloneSlice(p.modifiers),
		optional:    p.optional,
		initializer: p.initializer,
	}
	return b
}

// PropertyBuilder builds a PropertySpec
type PropertyBuilder struct {
	name        string
	typ         tstype.TypeName
	doc         *codeblock.Builder
	decorators  []DecoratorSpec
	modifiers   []Modifier
	optional    bool
	initializer codeblock.CodeBlock
	err         error
}

// NewPropertyBuilder starts a property. typ may be nil for an untyped property.
func NewPropertyBuilder(name string, typ tstype.TypeName) *PropertyBuilder {
	return &PropertyBuilder{name: name, typ: typ, doc: codeblock.NewBuilder()}
}

// NewProperty builds a property from its name, type, optionality and modifiers
func NewProperty(name string, typ tstype.TypeName, optional bool, modifiers ...Modifier) (PropertySpec, error) {
	return NewPropertyBuilder(name, typ).Optional(optional).AddModifiers(modifiers...).Build()
}

func (b *PropertyBuilder) AddDoc(format string, args ...interface{}) *PropertyBuilder {
	b.doc.Add(format, args...)
	return b
}

func (b *PropertyBuilder) AddDecorators(decorators ...DecoratorSpec) *PropertyBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *PropertyBuilder) AddModifiers(modifiers ...Modifier) *PropertyBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *PropertyBuilder) Optional(optional bool) *PropertyBuilder {
	b.optional = optional
	return b
}

// Initializer sets the expression the property is initialised with
func (b *PropertyBuilder) Initializer(format string, args ...interface{}) *PropertyBuilder {
	init, err := codeblock.Of(format, args...)
	if err != nil {
		b.err = errors.CombineErrors(b.err, err)
		return b
	}
	b.initializer = init
	return b
}

func (b *PropertyBuilder) InitializerCode(init codeblock.CodeBlock) *PropertyBuilder {
	b.initializer = init
	return b
}

// Build validates and returns the PropertySpec
func (b *PropertyBuilder) Build() (PropertySpec, error) {
	doc, err := b.doc.Build()
	if err = errors.CombineErrors(b.err, err); err != nil {
		return PropertySpec{}, err
	}
	if b.name == "" {
		return PropertySpec{}, errors.NewInvalidNameError("property requires a name")
	}
	if err := checkModifiers("property "+b.name, propertyModifiers, b.modifiers); err != nil {
		return PropertySpec{}, err
	}
	if hasModifier(b.modifiers, Abstract) && !b.initializer.IsEmpty() {
		return PropertySpec{}, errors.NewAbstractViolationError("abstract property %s cannot have an initializer", b.name)
	}
	return PropertySpec{
		name:        b.name,
		typ:         b.typ,
		doc:         doc,
		decorators:  cloneSlice(b.decorators),
		modifiers:   canonical(b.modifiers),
		optional:    b.optional,
		initializer: b.initializer,
	}, nil
}
