package spec

import (
	"strings"

	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// ClassSpec is a frozen class declaration
type ClassSpec struct {
	name          string
	doc           codeblock.CodeBlock
	decorators    []DecoratorSpec
	modifiers     []Modifier
	typeVariables []tstype.TypeVariable
	superClass    tstype.TypeName
	mixins        []tstype.TypeName
	properties    []PropertySpec
	constructor   *FunctionSpec
	functions     []FunctionSpec
	promote       bool
}

func (c ClassSpec) Name() string                         { return c.name }
func (c ClassSpec) Doc() codeblock.CodeBlock             { return c.doc }
func (c ClassSpec) Decorators() []DecoratorSpec          { return cloneSlice(c.decorators) }
func (c ClassSpec) Modifiers() []Modifier                { return cloneSlice(c.modifiers) }
func (c ClassSpec) TypeVariables() []tstype.TypeVariable { return cloneSlice(c.typeVariables) }
func (c ClassSpec) SuperClass() tstype.TypeName          { return c.superClass }
func (c ClassSpec) Mixins() []tstype.TypeName            { return cloneSlice(c.mixins) }
func (c ClassSpec) Properties() []PropertySpec           { return cloneSlice(c.properties) }
func (c ClassSpec) Functions() []FunctionSpec            { return cloneSlice(c.functions) }

// Constructor returns the class constructor, if one is declared
func (c ClassSpec) Constructor() (FunctionSpec, bool) {
	if c.constructor == nil {
		return FunctionSpec{}, false
	}
	return *c.constructor, true
}

// PromoteConstructorProperties reports whether eligible properties are
// folded into constructor parameter properties when emitted
func (c ClassSpec) PromoteConstructorProperties() bool { return c.promote }

// IsAbstract reports whether the class is declared abstract
func (c ClassSpec) IsAbstract() bool { return hasModifier(c.modifiers, Abstract) }

// Emit renders the class declaration. Type references are resolved against
// scope, which collects the imports the file needs.
func (c ClassSpec) Emit(w *CodeWriter, scope *tstype.Scope) error {
	promoted := c.constructorProperties()

	w.EmitDoc(c.doc, scope)
	w.EmitDecorators(c.decorators, false, scope)
	w.EmitModifiers(c.modifiers, Public)
	w.Emit("class " + c.name)
	w.EmitTypeVariables(c.typeVariables, scope)
	w.Emit(c.heritage(scope))
	w.Emit(" {\n")
	w.Indent()

	members := 0
	for _, p := range c.properties {
		if _, ok := promoted[p.name]; ok {
			continue
		}
		members++
		w.Emit("\n")
		p.emit(w, scope, propertyStyle{
			implicit:        []Modifier{Public},
			asStatement:     true,
			withInitializer: true,
			compactOptional: !c.promote,
		})
	}

	if c.constructor != nil {
		members++
		w.Emit("\n")
		c.emitConstructor(w, scope, promoted)
	}

	for _, f := range c.functions {
		if f.kind != KindFactory {
			continue
		}
		members++
		w.Emit("\n")
		f.emit(w, scope, Public)
	}
	for _, f := range c.functions {
		if f.kind == KindFactory {
			continue
		}
		members++
		w.Emit("\n")
		f.emit(w, scope, Public)
	}

	w.Unindent()
	if members > 0 {
		w.Emit("\n")
	}
	w.Emit("}\n")
	return w.Err()
}

// heritage renders ` extends Base implements A, B`, or nothing
func (c ClassSpec) heritage(scope *tstype.Scope) string {
	var clauses []string
	if c.superClass != nil {
		clauses = append(clauses, "extends "+c.superClass.Render(scope))
	}
	if len(c.mixins) > 0 {
		names := make([]string, len(c.mixins))
		for i, m := range c.mixins {
			names[i] = m.Render(scope)
		}
		clauses = append(clauses, "implements "+strings.Join(names, ", "))
	}
	if len(clauses) == 0 {
		return ""
	}
	return " " + strings.Join(clauses, " ")
}

func (c ClassSpec) emitConstructor(w *CodeWriter, scope *tstype.Scope, promoted map[string]PropertySpec) {
	ctor := *c.constructor
	body := ctor.body.ToBuilder()

	w.EmitDoc(ctor.doc, scope)
	w.EmitDecorators(ctor.decorators, true, scope)
	w.EmitModifiers(ctor.modifiers)
	w.Emit(constructorName)
	w.EmitParameters(ctor.parameters, ctor.rest, func(p ParameterSpec, isRest bool) {
		prop, ok := promoted[p.name]
		if !ok || isRest {
			p.emit(w, scope, isRest, !c.promote)
			return
		}
		style := propertyStyle{inline: true, compactOptional: true}
		if !hasAnyModifier(prop.modifiers, parameterPropertyModifiers) {
			style.extra = []Modifier{Public}
		}
		prop.emit(w, scope, style)
		p.emitDefaultValue(w, scope)
		body.RemoveAll(selfAssignment(p.name))
	})

	code, err := body.Build()
	if err != nil {
		w.fail(errors.Wrapf(err, "class %s constructor", c.name))
		return
	}
	w.EmitBody(code, scope)
}

// String renders the class on its own, without import statements. A failed
// emission leaves the text truncated; use Emit or FileSpec.WriteTo to see the
// error.
func (c ClassSpec) String() string {
	var sb strings.Builder
	_ = c.Emit(NewCodeWriter(&sb, DefaultIndent), tstype.NewScope())
	return sb.String()
}

// ToBuilder returns a builder seeded with the class, for deriving variants
// without touching c
func (c ClassSpec) ToBuilder() *ClassBuilder {
	b := &ClassBuilder{
		name:          c.name,
		doc:           c.doc.ToBuilder(),
		decorators:    cloneSlice(c.decorators),
		modifiers:     cloneSlice(c.modifiers),
		typeVariables: cloneSlice(c.typeVariables),
		superClass:    c.superClass,
		mixins:        cloneSlice(c.mixins),
		properties:    cloneSlice(c.properties),
		functions:     cloneSlice(c.functions),
		promote:       c.promote,
	}
	if c.constructor != nil {
		ctor := *c.constructor
		b.constructor = &ctor
	}
	return b
}

// ClassBuilder accumulates a class declaration. Invalid calls are recorded
// where they happen and reported by Build.
type ClassBuilder struct {
	name          string
	doc           *codeblock.Builder
	decorators    []DecoratorSpec
	modifiers     []Modifier
	typeVariables []tstype.TypeVariable
	superClass    tstype.TypeName
	mixins        []tstype.TypeName
	properties    []PropertySpec
	constructor   *FunctionSpec
	functions     []FunctionSpec
	promote       bool
	err           error
}

// NewClassBuilder starts a class called name
func NewClassBuilder(name string) *ClassBuilder {
	return &ClassBuilder{name: name, doc: codeblock.NewBuilder(), promote: true}
}

// NewClassBuilderFor starts a class named after a type reference
func NewClassBuilderFor(t tstype.TypeName) *ClassBuilder {
	return NewClassBuilder(tstype.SimpleName(t))
}

func (b *ClassBuilder) fail(err error) *ClassBuilder {
	b.err = errors.CombineErrors(b.err, err)
	return b
}

// AddDoc appends to the class documentation
func (b *ClassBuilder) AddDoc(format string, args ...interface{}) *ClassBuilder {
	b.doc.Add(format, args...)
	return b
}

// AddDocCode appends a prebuilt block to the class documentation
func (b *ClassBuilder) AddDocCode(doc codeblock.CodeBlock) *ClassBuilder {
	b.doc.AddCode(doc)
	return b
}

func (b *ClassBuilder) AddDecorators(decorators ...DecoratorSpec) *ClassBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

// AddModifiers adds class modifiers; duplicates collapse
func (b *ClassBuilder) AddModifiers(modifiers ...Modifier) *ClassBuilder {
	b.modifiers = canonical(append(b.modifiers, modifiers...))
	return b
}

func (b *ClassBuilder) AddTypeVariables(vars ...tstype.TypeVariable) *ClassBuilder {
	b.typeVariables = append(b.typeVariables, vars...)
	return b
}

// SuperClass sets the class the declaration extends. It may be set once.
func (b *ClassBuilder) SuperClass(t tstype.TypeName) *ClassBuilder {
	if b.superClass != nil {
		return b.fail(errors.NewConflictError("class %s already extends %s", b.name, b.superClass))
	}
	b.superClass = t
	return b
}

// AddMixins appends implemented interfaces. Duplicates are kept.
func (b *ClassBuilder) AddMixins(types ...tstype.TypeName) *ClassBuilder {
	b.mixins = append(b.mixins, types...)
	return b
}

// Constructor sets the class constructor. f must be built as a constructor
// and the class may have only one.
func (b *ClassBuilder) Constructor(f FunctionSpec) *ClassBuilder {
	if !f.IsConstructor() {
		return b.fail(errors.NewKindMismatchError("%s %s is not a constructor", f.kind, f.name))
	}
	if b.constructor != nil {
		return b.fail(errors.NewConflictError("class %s already has a constructor", b.name))
	}
	b.constructor = &f
	return b
}

func (b *ClassBuilder) AddProperties(properties ...PropertySpec) *ClassBuilder {
	b.properties = append(b.properties, properties...)
	return b
}

// AddNewProperty builds and appends a property
func (b *ClassBuilder) AddNewProperty(name string, typ tstype.TypeName, optional bool, modifiers ...Modifier) *ClassBuilder {
	p, err := NewProperty(name, typ, optional, modifiers...)
	if err != nil {
		return b.fail(err)
	}
	return b.AddProperties(p)
}

// AddFunctions appends methods, accessors and factories. Constructors must
// be set with Constructor.
func (b *ClassBuilder) AddFunctions(functions ...FunctionSpec) *ClassBuilder {
	for _, f := range functions {
		if f.IsConstructor() {
			b.fail(errors.NewKindMismatchError("constructor of class %s must be set with Constructor", b.name))
			continue
		}
		b.functions = append(b.functions, f)
	}
	return b
}

// PromoteConstructorProperties toggles folding of eligible properties into
// constructor parameter properties. It is on by default.
func (b *ClassBuilder) PromoteConstructorProperties(promote bool) *ClassBuilder {
	b.promote = promote
	return b
}

// Build validates the declaration and returns the frozen ClassSpec
func (b *ClassBuilder) Build() (ClassSpec, error) {
	doc, docErr := b.doc.Build()
	if err := errors.CombineErrors(b.err, docErr); err != nil {
		return ClassSpec{}, err
	}
	if b.name == "" {
		return ClassSpec{}, errors.NewInvalidNameError("class requires a name")
	}
	if err := checkModifiers("class "+b.name, classModifiers, b.modifiers); err != nil {
		return ClassSpec{}, err
	}
	if !hasModifier(b.modifiers, Abstract) {
		for _, f := range b.functions {
			if f.IsAbstract() {
				return ClassSpec{}, errors.NewAbstractViolationError(
					"non-abstract class %s declares abstract %s %s", b.name, f.kind, f.name)
			}
		}
		for _, p := range b.properties {
			if hasModifier(p.modifiers, Abstract) {
				return ClassSpec{}, errors.NewAbstractViolationError(
					"non-abstract class %s declares abstract property %s", b.name, p.name)
			}
		}
	}

	c := ClassSpec{
		name:          b.name,
		doc:           doc,
		decorators:    cloneSlice(b.decorators),
		modifiers:     canonical(b.modifiers),
		typeVariables: cloneSlice(b.typeVariables),
		superClass:    b.superClass,
		mixins:        cloneSlice(b.mixins),
		properties:    cloneSlice(b.properties),
		functions:     cloneSlice(b.functions),
		promote:       b.promote,
	}
	if b.constructor != nil {
		ctor := *b.constructor
		c.constructor = &ctor
	}
	return c, nil
}
