package spec

import (
	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// FunctionKind distinguishes the constructor and accessors from ordinary methods
type FunctionKind int

const (
	KindMethod FunctionKind = iota
	KindConstructor
	// KindFactory is a static, constructor-like function returning an instance
	KindFactory
	KindGetter
	KindSetter
)

func (k FunctionKind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindFactory:
		return "factory"
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	default:
		return "method"
	}
}

// ParseFunctionKind returns the kind named s; the empty string is a method
func ParseFunctionKind(s string) (FunctionKind, error) {
	switch s {
	case "", "method":
		return KindMethod, nil
	case "constructor":
		return KindConstructor, nil
	case "factory":
		return KindFactory, nil
	case "getter", "get":
		return KindGetter, nil
	case "setter", "set":
		return KindSetter, nil
	}
	return KindMethod, errors.NewKindMismatchError("unknown function kind %q", s)
}

const constructorName = "constructor"

// FunctionSpec is a method, accessor, factory or constructor
type FunctionSpec struct {
	name          string
	kind          FunctionKind
	doc           codeblock.CodeBlock
	decorators    []DecoratorSpec
	modifiers     []Modifier
	typeVariables []tstype.TypeVariable
	parameters    []ParameterSpec
	rest          *ParameterSpec
	returnType    tstype.TypeName
	body          codeblock.CodeBlock
}

func (f FunctionSpec) Name() string                         { return f.name }
func (f FunctionSpec) Kind() FunctionKind                   { return f.kind }
func (f FunctionSpec) Doc() codeblock.CodeBlock             { return f.doc }
func (f FunctionSpec) Decorators() []DecoratorSpec          { return cloneSlice(f.decorators) }
func (f FunctionSpec) Modifiers() []Modifier                { return cloneSlice(f.modifiers) }
func (f FunctionSpec) TypeVariables() []tstype.TypeVariable { return cloneSlice(f.typeVariables) }
func (f FunctionSpec) Parameters() []ParameterSpec          { return cloneSlice(f.parameters) }
func (f FunctionSpec) ReturnType() tstype.TypeName          { return f.returnType }
func (f FunctionSpec) Body() codeblock.CodeBlock            { return f.body }

// RestParameter returns the trailing ...rest parameter, if any
func (f FunctionSpec) RestParameter() (ParameterSpec, bool) {
	if f.rest == nil {
		return ParameterSpec{}, false
	}
	return *f.rest, true
}

// IsConstructor reports whether f is a class constructor
func (f FunctionSpec) IsConstructor() bool { return f.kind == KindConstructor }

// IsAbstract reports whether f is declared abstract
func (f FunctionSpec) IsAbstract() bool { return hasModifier(f.modifiers, Abstract) }

// Parameter returns the regular (non-rest) parameter called name
func (f FunctionSpec) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range f.parameters {
		if p.name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

func (f FunctionSpec) emit(w *CodeWriter, scope *tstype.Scope, implicit ...Modifier) {
	w.EmitDoc(f.doc, scope)
	w.EmitDecorators(f.decorators, false, scope)
	w.EmitModifiers(f.modifiers, implicit...)
	switch f.kind {
	case KindGetter:
		w.Emit("get ")
	case KindSetter:
		w.Emit("set ")
	}
	w.Emit(f.name)
	w.EmitTypeVariables(f.typeVariables, scope)
	w.EmitParameters(f.parameters, f.rest, func(p ParameterSpec, isRest bool) {
		p.emit(w, scope, isRest, true)
	})
	if f.returnType != nil {
		w.Emit(": " + f.returnType.Render(scope))
	}
	if f.IsAbstract() {
		w.Emit(";\n")
		return
	}
	w.EmitBody(f.body, scope)
}

// ToBuilder returns a builder seeded with f
func (f FunctionSpec) ToBuilder() *FunctionBuilder {
	var rest *ParameterSpec
	if f.rest != nil {
		r := *f.rest
		rest = &r
	}
	return &FunctionBuilder{
		name:          f.name,
		kind:          f.kind,
		doc:           f.doc.ToBuilder(),
		decorators:    cloneSlice(f.decorators),
		modifiers:     cloneSlice(f.modifiers),
		typeVariables: cloneSlice(f.typeVariables),
		parameters:    cloneSlice(f.parameters),
		rest:          rest,
		returnType:    f.returnType,
		body:          f.body.ToBuilder(),
	}
}

// FunctionBuilder builds a FunctionSpec
type FunctionBuilder struct {
	name          string
	kind          FunctionKind
	doc           *codeblock.Builder
	decorators    []DecoratorSpec
	modifiers     []Modifier
	typeVariables []tstype.TypeVariable
	parameters    []ParameterSpec
	rest          *ParameterSpec
	returnType    tstype.TypeName
	body          *codeblock.Builder
	err           error
}

func newFunctionBuilder(name string, kind FunctionKind) *FunctionBuilder {
	return &FunctionBuilder{
		name: name,
		kind: kind,
		doc:  codeblock.NewBuilder(),
		body: codeblock.NewBuilder(),
	}
}

// NewFunctionBuilder starts an ordinary method
func NewFunctionBuilder(name string) *FunctionBuilder {
	return newFunctionBuilder(name, KindMethod)
}

// NewConstructorBuilder starts a class constructor
func NewConstructorBuilder() *FunctionBuilder {
	return newFunctionBuilder(constructorName, KindConstructor)
}

// NewFactoryBuilder starts a static factory function
func NewFactoryBuilder(name string) *FunctionBuilder {
	return newFunctionBuilder(name, KindFactory).AddModifiers(Static)
}

// NewGetterBuilder starts a get accessor
func NewGetterBuilder(name string) *FunctionBuilder {
	return newFunctionBuilder(name, KindGetter)
}

// NewSetterBuilder starts a set accessor
func NewSetterBuilder(name string) *FunctionBuilder {
	return newFunctionBuilder(name, KindSetter)
}

func (b *FunctionBuilder) fail(err error) *FunctionBuilder {
	b.err = errors.CombineErrors(b.err, err)
	return b
}

func (b *FunctionBuilder) AddDoc(format string, args ...interface{}) *FunctionBuilder {
	b.doc.Add(format, args...)
	return b
}

func (b *FunctionBuilder) AddDecorators(decorators ...DecoratorSpec) *FunctionBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *FunctionBuilder) AddModifiers(modifiers ...Modifier) *FunctionBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *FunctionBuilder) AddTypeVariables(vars ...tstype.TypeVariable) *FunctionBuilder {
	b.typeVariables = append(b.typeVariables, vars...)
	return b
}

func (b *FunctionBuilder) AddParameters(params ...ParameterSpec) *FunctionBuilder {
	b.parameters = append(b.parameters, params...)
	return b
}

// AddNewParameter appends a plain parameter
func (b *FunctionBuilder) AddNewParameter(name string, typ tstype.TypeName, optional bool) *FunctionBuilder {
	p, err := NewParameter(name, typ, optional)
	if err != nil {
		return b.fail(err)
	}
	return b.AddParameters(p)
}

// RestParameter sets the trailing ...rest parameter; it may be set once
func (b *FunctionBuilder) RestParameter(p ParameterSpec) *FunctionBuilder {
	if b.rest != nil {
		return b.fail(errors.NewConflictError("%s already has rest parameter %s", b.name, b.rest.name))
	}
	b.rest = &p
	return b
}

func (b *FunctionBuilder) Returns(t tstype.TypeName) *FunctionBuilder {
	b.returnType = t
	return b
}

// AddCode appends formatted code to the body
func (b *FunctionBuilder) AddCode(format string, args ...interface{}) *FunctionBuilder {
	b.body.Add(format, args...)
	return b
}

// AddStatement appends a statement to the body
func (b *FunctionBuilder) AddStatement(format string, args ...interface{}) *FunctionBuilder {
	b.body.AddStatement(format, args...)
	return b
}

func (b *FunctionBuilder) BeginControlFlow(format string, args ...interface{}) *FunctionBuilder {
	b.body.BeginControlFlow(format, args...)
	return b
}

func (b *FunctionBuilder) NextControlFlow(format string, args ...interface{}) *FunctionBuilder {
	b.body.NextControlFlow(format, args...)
	return b
}

func (b *FunctionBuilder) EndControlFlow() *FunctionBuilder {
	b.body.EndControlFlow()
	return b
}

// Body appends a prebuilt block to the body
func (b *FunctionBuilder) Body(code codeblock.CodeBlock) *FunctionBuilder {
	b.body.AddCode(code)
	return b
}

// Build validates and returns the FunctionSpec
func (b *FunctionBuilder) Build() (FunctionSpec, error) {
	doc, docErr := b.doc.Build()
	body, bodyErr := b.body.Build()
	if err := errors.CombineErrors(b.err, errors.CombineErrors(docErr, bodyErr)); err != nil {
		return FunctionSpec{}, errors.Wrapf(err, "function %s", b.name)
	}
	if err := b.validate(body); err != nil {
		return FunctionSpec{}, err
	}

	var rest *ParameterSpec
	if b.rest != nil {
		r := *b.rest
		rest = &r
	}
	return FunctionSpec{
		name:          b.name,
		kind:          b.kind,
		doc:           doc,
		decorators:    cloneSlice(b.decorators),
		modifiers:     canonical(b.modifiers),
		typeVariables: cloneSlice(b.typeVariables),
		parameters:    cloneSlice(b.parameters),
		rest:          rest,
		returnType:    b.returnType,
		body:          body,
	}, nil
}

func (b *FunctionBuilder) validate(body codeblock.CodeBlock) error {
	if b.name == "" {
		return errors.NewInvalidNameError("function requires a name")
	}
	if err := checkModifiers(b.kind.String()+" "+b.name, functionModifiers, b.modifiers); err != nil {
		return err
	}

	seen := make(map[string]bool, len(b.parameters)+1)
	params := b.parameters
	if b.rest != nil {
		params = append(cloneSlice(params), *b.rest)
	}
	for _, p := range params {
		if seen[p.name] {
			return errors.NewConflictError("%s declares parameter %s twice", b.name, p.name)
		}
		seen[p.name] = true
	}

	abstract := hasModifier(b.modifiers, Abstract)
	if abstract && !body.IsEmpty() {
		return errors.NewAbstractViolationError("abstract %s %s cannot have a body", b.kind, b.name)
	}

	switch b.kind {
	case KindConstructor:
		if b.returnType != nil {
			return errors.NewKindMismatchError("constructor cannot declare a return type")
		}
		if len(b.typeVariables) > 0 {
			return errors.NewKindMismatchError("constructor cannot declare type parameters")
		}
		if abstract || hasModifier(b.modifiers, Static) || hasModifier(b.modifiers, Async) || hasModifier(b.modifiers, Override) {
			return errors.NewInvalidModifierError("constructor only accepts visibility modifiers")
		}
	case KindFactory:
		if !hasModifier(b.modifiers, Static) {
			return errors.NewKindMismatchError("factory %s must be static", b.name)
		}
	case KindGetter:
		if len(params) > 0 {
			return errors.NewKindMismatchError("getter %s cannot take parameters", b.name)
		}
	case KindSetter:
		if len(b.parameters) != 1 || b.rest != nil {
			return errors.NewKindMismatchError("setter %s must take exactly one parameter", b.name)
		}
		if b.returnType != nil {
			return errors.NewKindMismatchError("setter %s cannot declare a return type", b.name)
		}
	}
	if b.name == constructorName && b.kind != KindConstructor {
		return errors.NewKindMismatchError("%s named constructor must be built with NewConstructorBuilder", b.kind)
	}
	return nil
}
