package schema

import (
	"strconv"

	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/spec"
	"github.com/teranos/classgen/tstype"
)

// Options are the generator settings applied to every description
type Options struct {
	// Module is used when the description does not name one
	Module string
	// Header is used when the description has none
	Header string
	Indent string
	// Promote is the default for classes that do not set promote
	Promote bool
}

// Build converts the description into a file spec. Errors name the class
// and member they were found in and are marked ErrInvalidDescription.
func (f File) Build(opts Options) (spec.FileSpec, error) {
	module := f.Module
	if module == "" {
		module = opts.Module
	}
	if module == "" {
		return spec.FileSpec{}, errors.WrapInvalidDescription(
			errors.NewInvalidNameError("description has no module"), "module")
	}

	fb := spec.NewFileBuilder(module)
	if opts.Indent != "" {
		fb.Indent(opts.Indent)
	}
	header := f.Header
	if header == "" {
		header = opts.Header
	}
	if header != "" {
		fb.AddComment("%L", header)
	}

	r := newResolver(f.Imports)
	for i, cls := range f.Classes {
		if cls.Name == "" && len(f.Classes) == 1 {
			cls.Name = ClassName(module)
		}
		c, err := buildClass(cls, r, opts.Promote)
		if err != nil {
			what := cls.Name
			if what == "" {
				what = "#" + strconv.Itoa(i+1)
			}
			return spec.FileSpec{}, errors.WrapInvalidDescription(err, "class "+what)
		}
		fb.AddClass(c)
	}

	file, err := fb.Build()
	if err != nil {
		return spec.FileSpec{}, errors.WrapInvalidDescription(err, module)
	}
	return file, nil
}

func buildClass(cls Class, r resolver, promote bool) (spec.ClassSpec, error) {
	r = r.with(cls.TypeParams)
	b := spec.NewClassBuilder(cls.Name)
	if cls.Doc != "" {
		b.AddDoc("%L", cls.Doc)
	}

	mods, err := parseModifiers(cls.Modifiers)
	if err != nil {
		return spec.ClassSpec{}, err
	}
	b.AddModifiers(mods...)

	decorators, err := buildDecorators(cls.Decorators, r)
	if err != nil {
		return spec.ClassSpec{}, err
	}
	b.AddDecorators(decorators...)

	vars, err := buildTypeParams(cls.TypeParams, r)
	if err != nil {
		return spec.ClassSpec{}, err
	}
	b.AddTypeVariables(vars...)

	if cls.Extends != "" {
		super, err := r.parse(cls.Extends)
		if err != nil {
			return spec.ClassSpec{}, errors.Wrap(err, "extends")
		}
		b.SuperClass(super)
	}
	for _, expr := range cls.Implements {
		t, err := r.parse(expr)
		if err != nil {
			return spec.ClassSpec{}, errors.Wrap(err, "implements")
		}
		b.AddMixins(t)
	}

	if cls.Promote != nil {
		promote = *cls.Promote
	}
	b.PromoteConstructorProperties(promote)

	for _, prop := range cls.Properties {
		p, err := buildProperty(prop, r)
		if err != nil {
			return spec.ClassSpec{}, errors.Wrapf(err, "property %s", prop.Name)
		}
		b.AddProperties(p)
	}

	if cls.Constructor != nil {
		ctor, err := buildFunction(*cls.Constructor, r, true)
		if err != nil {
			return spec.ClassSpec{}, errors.Wrap(err, "constructor")
		}
		b.Constructor(ctor)
	}

	for _, m := range cls.Methods {
		fn, err := buildFunction(m, r, false)
		if err != nil {
			return spec.ClassSpec{}, errors.Wrapf(err, "method %s", m.Name)
		}
		b.AddFunctions(fn)
	}

	return b.Build()
}

func parseModifiers(names []string) ([]spec.Modifier, error) {
	mods := make([]spec.Modifier, 0, len(names))
	for _, name := range names {
		m, err := spec.ParseModifier(name)
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

func buildDecorators(decorators []Decorator, r resolver) ([]spec.DecoratorSpec, error) {
	var out []spec.DecoratorSpec
	for _, d := range decorators {
		b := spec.NewDecoratorBuilder(r.name(d.Name)).Factory(d.Call)
		for _, arg := range d.Args {
			b.AddArgumentCode(codeblock.Raw(arg))
		}
		dec, err := b.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "decorator @%s", d.Name)
		}
		out = append(out, dec)
	}
	return out, nil
}

func buildTypeParams(params []TypeParam, r resolver) ([]tstype.TypeVariable, error) {
	var out []tstype.TypeVariable
	for _, tp := range params {
		if tp.Name == "" {
			return nil, errors.NewInvalidNameError("type parameter requires a name")
		}
		v := tstype.Var(tp.Name)
		bound, err := r.parseOptional(tp.Extends)
		if err != nil {
			return nil, errors.Wrapf(err, "type parameter %s", tp.Name)
		}
		def, err := r.parseOptional(tp.Default)
		if err != nil {
			return nil, errors.Wrapf(err, "type parameter %s", tp.Name)
		}
		if bound != nil {
			v = v.Extends(bound)
		}
		if def != nil {
			v = v.WithDefault(def)
		}
		out = append(out, v)
	}
	return out, nil
}

func buildProperty(prop Property, r resolver) (spec.PropertySpec, error) {
	typ, err := r.parseOptional(prop.Type)
	if err != nil {
		return spec.PropertySpec{}, err
	}
	mods, err := parseModifiers(prop.Modifiers)
	if err != nil {
		return spec.PropertySpec{}, err
	}
	decorators, err := buildDecorators(prop.Decorators, r)
	if err != nil {
		return spec.PropertySpec{}, err
	}

	b := spec.NewPropertyBuilder(prop.Name, typ).
		Optional(prop.Optional).
		AddModifiers(mods...).
		AddDecorators(decorators...)
	if prop.Doc != "" {
		b.AddDoc("%L", prop.Doc)
	}
	if prop.Init != "" {
		b.InitializerCode(codeblock.Raw(prop.Init))
	}
	return b.Build()
}

func buildParam(param Param, r resolver) (spec.ParameterSpec, error) {
	typ, err := r.parseOptional(param.Type)
	if err != nil {
		return spec.ParameterSpec{}, errors.Wrapf(err, "parameter %s", param.Name)
	}
	mods, err := parseModifiers(param.Modifiers)
	if err != nil {
		return spec.ParameterSpec{}, err
	}
	decorators, err := buildDecorators(param.Decorators, r)
	if err != nil {
		return spec.ParameterSpec{}, err
	}

	b := spec.NewParameterBuilder(param.Name, typ).
		Optional(param.Optional).
		AddModifiers(mods...).
		AddDecorators(decorators...)
	if param.Default != "" {
		b.DefaultValueCode(codeblock.Raw(param.Default))
	}
	return b.Build()
}

func newFunctionBuilder(fn Function, ctor bool) (*spec.FunctionBuilder, error) {
	if ctor {
		return spec.NewConstructorBuilder(), nil
	}
	kind, err := spec.ParseFunctionKind(fn.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case spec.KindConstructor:
		return nil, errors.NewKindMismatchError("the constructor is declared under constructor, not methods")
	case spec.KindFactory:
		return spec.NewFactoryBuilder(fn.Name), nil
	case spec.KindGetter:
		return spec.NewGetterBuilder(fn.Name), nil
	case spec.KindSetter:
		return spec.NewSetterBuilder(fn.Name), nil
	}
	return spec.NewFunctionBuilder(fn.Name), nil
}

func buildFunction(fn Function, r resolver, ctor bool) (spec.FunctionSpec, error) {
	b, err := newFunctionBuilder(fn, ctor)
	if err != nil {
		return spec.FunctionSpec{}, err
	}
	r = r.with(fn.TypeParams)

	if fn.Doc != "" {
		b.AddDoc("%L", fn.Doc)
	}
	mods, err := parseModifiers(fn.Modifiers)
	if err != nil {
		return spec.FunctionSpec{}, err
	}
	b.AddModifiers(mods...)

	decorators, err := buildDecorators(fn.Decorators, r)
	if err != nil {
		return spec.FunctionSpec{}, err
	}
	b.AddDecorators(decorators...)

	vars, err := buildTypeParams(fn.TypeParams, r)
	if err != nil {
		return spec.FunctionSpec{}, err
	}
	b.AddTypeVariables(vars...)

	for _, param := range fn.Params {
		p, err := buildParam(param, r)
		if err != nil {
			return spec.FunctionSpec{}, err
		}
		b.AddParameters(p)
	}
	if fn.Rest != nil {
		p, err := buildParam(*fn.Rest, r)
		if err != nil {
			return spec.FunctionSpec{}, err
		}
		b.RestParameter(p)
	}

	ret, err := r.parseOptional(fn.Returns)
	if err != nil {
		return spec.FunctionSpec{}, errors.Wrap(err, "return type")
	}
	if ret != nil {
		b.Returns(ret)
	}
	if fn.Body != "" {
		b.Body(codeblock.Raw(fn.Body))
	}
	return b.Build()
}
