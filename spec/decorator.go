package spec

import (
	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// DecoratorSpec is a decorator application: @Name, @Name() or @Name(args)
type DecoratorSpec struct {
	name    tstype.TypeName
	args    []codeblock.CodeBlock
	factory bool
}

// Name returns the decorator's reference
func (d DecoratorSpec) Name() tstype.TypeName { return d.name }

// Args returns the decorator's arguments
func (d DecoratorSpec) Args() []codeblock.CodeBlock { return cloneSlice(d.args) }

// IsFactory reports whether the decorator is called even without arguments
func (d DecoratorSpec) IsFactory() bool { return d.factory || len(d.args) > 0 }

func (d DecoratorSpec) emit(w *CodeWriter, scope *tstype.Scope) {
	w.Emit("@" + d.name.Render(scope))
	if !d.IsFactory() {
		return
	}
	w.Emit("(")
	w.EmitCode(codeblock.Join(d.args, ", "), scope)
	w.Emit(")")
}

// ToBuilder returns a builder seeded with d
func (d DecoratorSpec) ToBuilder() *DecoratorBuilder {
	return &DecoratorBuilder{name: d.name, args: cloneSlice(d.args), factory: d.factory}
}

// DecoratorBuilder builds a DecoratorSpec
type DecoratorBuilder struct {
	name    tstype.TypeName
	args    []codeblock.CodeBlock
	factory bool
	err     error
}

// NewDecoratorBuilder starts a decorator referring to name. Use an imported
// tstype.Named so the decorator's module is imported by the file.
func NewDecoratorBuilder(name tstype.TypeName) *DecoratorBuilder {
	return &DecoratorBuilder{name: name}
}

// AddArgument appends a formatted argument
func (b *DecoratorBuilder) AddArgument(format string, args ...interface{}) *DecoratorBuilder {
	arg, err := codeblock.Of(format, args...)
	if err != nil {
		b.err = errors.CombineErrors(b.err, err)
		return b
	}
	b.args = append(b.args, arg)
	return b
}

// AddArgumentCode appends an argument
func (b *DecoratorBuilder) AddArgumentCode(arg codeblock.CodeBlock) *DecoratorBuilder {
	b.args = append(b.args, arg)
	return b
}

// Factory makes the decorator render as a call even without arguments
func (b *DecoratorBuilder) Factory(factory bool) *DecoratorBuilder {
	b.factory = factory
	return b
}

// Build returns the DecoratorSpec
func (b *DecoratorBuilder) Build() (DecoratorSpec, error) {
	if b.err != nil {
		return DecoratorSpec{}, b.err
	}
	if b.name == nil || tstype.SimpleName(b.name) == "" {
		return DecoratorSpec{}, errors.NewInvalidNameError("decorator requires a name")
	}
	return DecoratorSpec{name: b.name, args: cloneSlice(b.args), factory: b.factory}, nil
}

// cloneSlice copies s; empty input yields nil so frozen values compare equal
// across builder round trips.
func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
