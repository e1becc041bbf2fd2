package spec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

func userConstructor(t *testing.T, statements ...string) FunctionSpec {
	t.Helper()
	b := NewConstructorBuilder().AddNewParameter("name", tstype.String, false)
	for _, s := range statements {
		b.AddStatement(s)
	}
	ctor, err := b.Build()
	require.NoError(t, err)
	return ctor
}

func TestEmptyClassCollapses(t *testing.T) {
	c := Must(NewClassBuilder("Empty").Build())
	assert.Equal(t, "class Empty {\n}\n", c.String())
}

func TestClassHeader(t *testing.T) {
	tests := []struct {
		name  string
		build func() *ClassBuilder
		want  string
	}{
		{
			name:  "export",
			build: func() *ClassBuilder { return NewClassBuilder("A").AddModifiers(Export) },
			want:  "export class A {\n}\n",
		},
		{
			name: "extends only",
			build: func() *ClassBuilder {
				return NewClassBuilder("A").SuperClass(tstype.Local("Base"))
			},
			want: "class A extends Base {\n}\n",
		},
		{
			name: "implements only",
			build: func() *ClassBuilder {
				return NewClassBuilder("A").AddMixins(tstype.Local("I1"))
			},
			want: "class A implements I1 {\n}\n",
		},
		{
			name: "extends and implements",
			build: func() *ClassBuilder {
				return NewClassBuilder("Repo").
					AddModifiers(Export).
					SuperClass(tstype.Local("Base")).
					AddMixins(tstype.Local("I1"), tstype.Local("I2"))
			},
			want: "export class Repo extends Base implements I1, I2 {\n}\n",
		},
		{
			name: "modifiers in canonical order",
			build: func() *ClassBuilder {
				return NewClassBuilder("Shape").AddModifiers(Abstract, Export, Export)
			},
			want: "export abstract class Shape {\n}\n",
		},
		{
			name: "type variables",
			build: func() *ClassBuilder {
				return NewClassBuilder("Box").
					AddTypeVariables(tstype.Var("T").Extends(tstype.Object).WithDefault(tstype.Any))
			},
			want: "class Box<T extends object = any> {\n}\n",
		},
		{
			name: "generic superclass",
			build: func() *ClassBuilder {
				return NewClassBuilder("Users").
					SuperClass(tstype.Generic(tstype.Local("Repository"), tstype.Local("User")))
			},
			want: "class Users extends Repository<User> {\n}\n",
		},
		{
			name: "documentation and decorators",
			build: func() *ClassBuilder {
				return NewClassBuilder("User").
					AddDoc("A user.\n\nStored in the users table.\n").
					AddDecorators(Must(NewDecoratorBuilder(tstype.Local("Entity")).Factory(true).Build()))
			},
			want: "/**\n * A user.\n *\n * Stored in the users table.\n */\n@Entity()\nclass User {\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build().Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestPromotedConstructorProperty(t *testing.T) {
	c := Must(NewClassBuilder("User").
		AddNewProperty("name", tstype.String, false).
		Constructor(userConstructor(t, "this.name = name")).
		Build())

	want := "class User {\n" +
		"\n" +
		"  constructor(public name: string) {\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestPromotionDisabled(t *testing.T) {
	c := Must(NewClassBuilder("User").
		AddNewProperty("name", tstype.String, false).
		Constructor(userConstructor(t, "this.name = name")).
		PromoteConstructorProperties(false).
		Build())

	want := "class User {\n" +
		"\n" +
		"  name: string;\n" +
		"\n" +
		"  constructor(name: string) {\n" +
		"    this.name = name;\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
	assert.Empty(t, c.PromotedProperties())
}

func TestPromotionKeepsOtherStatements(t *testing.T) {
	c := Must(NewClassBuilder("User").
		SuperClass(tstype.Local("Base")).
		AddNewProperty("name", tstype.String, false).
		Constructor(userConstructor(t, "super()", "this.name = name", "console.log(name)")).
		Build())

	want := "class User extends Base {\n" +
		"\n" +
		"  constructor(public name: string) {\n" +
		"    super();\n" +
		"    console.log(name);\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestPromotedParameterModifiers(t *testing.T) {
	tests := []struct {
		name      string
		modifiers []Modifier
		want      string
	}{
		{"none gets public", nil, "public id: string"},
		{"private", []Modifier{Private}, "private id: string"},
		{"readonly alone", []Modifier{Readonly}, "readonly id: string"},
		{"private readonly", []Modifier{Readonly, Private}, "private readonly id: string"},
		{"protected", []Modifier{Protected}, "protected id: string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctor := Must(NewConstructorBuilder().
				AddNewParameter("id", tstype.String, false).
				AddStatement("this.id = id").
				Build())
			c := Must(NewClassBuilder("Entity").
				AddNewProperty("id", tstype.String, false, tt.modifiers...).
				Constructor(ctor).
				Build())

			want := "class Entity {\n\n  constructor(" + tt.want + ") {\n  }\n\n}\n"
			assert.Equal(t, want, c.String())
		})
	}
}

func TestPromotedPropertyDocAndDecoratorsStayInline(t *testing.T) {
	prop := Must(NewPropertyBuilder("id", tstype.String).
		AddDoc("The primary key.").
		AddDecorators(Must(NewDecoratorBuilder(tstype.Imported("Column", "typeorm")).Factory(true).Build())).
		Build())
	ctor := Must(NewConstructorBuilder().
		AddNewParameter("id", tstype.String, false).
		AddStatement("this.id = id").
		Build())
	c := Must(NewClassBuilder("Row").AddProperties(prop).Constructor(ctor).Build())

	want := "class Row {\n\n  constructor(/** The primary key. */ @Column() public id: string) {\n  }\n\n}\n"
	assert.Equal(t, want, c.String())
}

func TestPromotedOptionalAndDefault(t *testing.T) {
	greeting := Must(NewParameterBuilder("greeting", tstype.String).DefaultValue("%S", "hi").Build())
	ctor := Must(NewConstructorBuilder().
		AddNewParameter("nick", tstype.String, true).
		AddParameters(greeting).
		AddStatement("this.nick = nick").
		AddStatement("this.greeting = greeting").
		Build())
	c := Must(NewClassBuilder("Profile").
		AddNewProperty("nick", tstype.String, true).
		AddNewProperty("greeting", tstype.String, false).
		Constructor(ctor).
		Build())

	want := "class Profile {\n\n  constructor(public nick?: string, public greeting: string = 'hi') {\n  }\n\n}\n"
	assert.Equal(t, want, c.String())
}

func TestOptionalRenderingFollowsPromotionSetting(t *testing.T) {
	ctor := Must(NewConstructorBuilder().AddNewParameter("limit", tstype.Number, true).Build())
	build := func(promote bool) ClassSpec {
		return Must(NewClassBuilder("Query").
			AddNewProperty("cursor", tstype.String, true).
			Constructor(ctor).
			PromoteConstructorProperties(promote).
			Build())
	}

	on := "class Query {\n" +
		"\n" +
		"  cursor: string | undefined;\n" +
		"\n" +
		"  constructor(limit: number | undefined) {\n" +
		"  }\n" +
		"\n" +
		"}\n"
	off := "class Query {\n" +
		"\n" +
		"  cursor?: string;\n" +
		"\n" +
		"  constructor(limit?: number) {\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, on, build(true).String())
	assert.Equal(t, off, build(false).String())
}

func TestRestParameterIsNotPromoted(t *testing.T) {
	ctor := Must(NewConstructorBuilder().
		RestParameter(Must(NewParameter("tags", tstype.ArrayOf(tstype.String), false))).
		AddStatement("this.tags = tags").
		Build())
	c := Must(NewClassBuilder("Post").
		AddNewProperty("tags", tstype.ArrayOf(tstype.String), false).
		Constructor(ctor).
		Build())

	want := "class Post {\n" +
		"\n" +
		"  tags: string[];\n" +
		"\n" +
		"  constructor(...tags: string[]) {\n" +
		"    this.tags = tags;\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestMemberOrder(t *testing.T) {
	greet := Must(NewFunctionBuilder("greet").
		Returns(tstype.String).
		AddStatement("return %S + this.name", "Hello, ").
		Build())
	create := Must(NewFactoryBuilder("create").
		AddNewParameter("name", tstype.String, false).
		Returns(tstype.Local("User")).
		AddStatement("return new User(name)").
		Build())
	count := Must(NewPropertyBuilder("count", tstype.Number).
		AddModifiers(Static, Public).
		Initializer("%L", 0).
		Build())

	c := Must(NewClassBuilder("User").
		AddModifiers(Export).
		AddFunctions(greet, create).
		AddNewProperty("name", tstype.String, false).
		AddProperties(count).
		Constructor(userConstructor(t, "this.name = name")).
		Build())

	want := "export class User {\n" +
		"\n" +
		"  static count: number = 0;\n" +
		"\n" +
		"  constructor(public name: string) {\n" +
		"  }\n" +
		"\n" +
		"  static create(name: string): User {\n" +
		"    return new User(name);\n" +
		"  }\n" +
		"\n" +
		"  greet(): string {\n" +
		"    return 'Hello, ' + this.name;\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestAccessorsAndAbstractMembers(t *testing.T) {
	area := Must(NewFunctionBuilder("area").AddModifiers(Abstract).Returns(tstype.Number).Build())
	label := Must(NewGetterBuilder("label").
		Returns(tstype.String).
		AddStatement("return %S", "shape").
		Build())
	scale := Must(NewSetterBuilder("scale").
		AddNewParameter("value", tstype.Number, false).
		AddModifiers(Protected).
		AddStatement("this.factor = value").
		Build())
	sides := Must(NewProperty("sides", tstype.Number, false, Abstract, Readonly))

	c := Must(NewClassBuilder("Shape").
		AddModifiers(Abstract).
		AddProperties(sides).
		AddFunctions(area, label, scale).
		Build())

	want := "abstract class Shape {\n" +
		"\n" +
		"  abstract readonly sides: number;\n" +
		"\n" +
		"  abstract area(): number;\n" +
		"\n" +
		"  get label(): string {\n" +
		"    return 'shape';\n" +
		"  }\n" +
		"\n" +
		"  protected set scale(value: number) {\n" +
		"    this.factor = value;\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestControlFlowBody(t *testing.T) {
	check := Must(NewFunctionBuilder("check").
		AddModifiers(Async, Private).
		AddNewParameter("n", tstype.Number, false).
		Returns(tstype.Generic(tstype.Local("Promise"), tstype.Boolean)).
		BeginControlFlow("if (n > 0)").
		AddStatement("return true").
		NextControlFlow("else").
		AddStatement("return false").
		EndControlFlow().
		Build())
	c := Must(NewClassBuilder("Checker").AddFunctions(check).Build())

	want := "class Checker {\n" +
		"\n" +
		"  private async check(n: number): Promise<boolean> {\n" +
		"    if (n > 0) {\n" +
		"      return true;\n" +
		"    } else {\n" +
		"      return false;\n" +
		"    }\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestClassBuilderErrors(t *testing.T) {
	ctor := Must(NewConstructorBuilder().Build())
	method := Must(NewFunctionBuilder("run").Build())
	abstractMethod := Must(NewFunctionBuilder("run").AddModifiers(Abstract).Build())

	tests := []struct {
		name  string
		build func() *ClassBuilder
		mark  error
	}{
		{
			name: "superclass set twice",
			build: func() *ClassBuilder {
				return NewClassBuilder("A").SuperClass(tstype.Local("B")).SuperClass(tstype.Local("C"))
			},
			mark: errors.ErrConflict,
		},
		{
			name:  "constructor set twice",
			build: func() *ClassBuilder { return NewClassBuilder("A").Constructor(ctor).Constructor(ctor) },
			mark:  errors.ErrConflict,
		},
		{
			name:  "method as constructor",
			build: func() *ClassBuilder { return NewClassBuilder("A").Constructor(method) },
			mark:  errors.ErrKindMismatch,
		},
		{
			name:  "constructor as function",
			build: func() *ClassBuilder { return NewClassBuilder("A").AddFunctions(ctor) },
			mark:  errors.ErrKindMismatch,
		},
		{
			name:  "abstract method in concrete class",
			build: func() *ClassBuilder { return NewClassBuilder("A").AddFunctions(abstractMethod) },
			mark:  errors.ErrAbstractViolation,
		},
		{
			name:  "abstract property in concrete class",
			build: func() *ClassBuilder { return NewClassBuilder("A").AddNewProperty("x", tstype.Number, false, Abstract) },
			mark:  errors.ErrAbstractViolation,
		},
		{
			name:  "empty name",
			build: func() *ClassBuilder { return NewClassBuilder("") },
			mark:  errors.ErrInvalidName,
		},
		{
			name:  "visibility on class",
			build: func() *ClassBuilder { return NewClassBuilder("A").AddModifiers(Private) },
			mark:  errors.ErrInvalidModifier,
		},
		{
			name: "invalid property is sticky",
			build: func() *ClassBuilder {
				return NewClassBuilder("A").AddNewProperty("", tstype.Number, false).AddMixins(tstype.Local("I"))
			},
			mark: errors.ErrInvalidName,
		},
		{
			name:  "malformed doc",
			build: func() *ClassBuilder { return NewClassBuilder("A").AddDoc("%T") },
			mark:  errors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.mark), "got %v", err)
		})
	}
}

func TestAbstractClassAcceptsAbstractMembers(t *testing.T) {
	run := Must(NewFunctionBuilder("run").AddModifiers(Abstract).Build())
	_, err := NewClassBuilder("Task").
		AddModifiers(Abstract).
		AddFunctions(run).
		AddNewProperty("id", tstype.String, false, Abstract).
		Build()
	assert.NoError(t, err)
}

func TestMustPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		Must(NewClassBuilder("").Build())
	})
}

func TestToBuilderRoundTrip(t *testing.T) {
	greet := Must(NewFunctionBuilder("greet").Returns(tstype.String).AddStatement("return this.name").Build())
	original := Must(NewClassBuilder("User").
		AddDoc("A user.").
		AddModifiers(Export).
		AddTypeVariables(tstype.Var("T")).
		SuperClass(tstype.Imported("Model", "./model")).
		AddMixins(tstype.Local("Serializable")).
		AddNewProperty("name", tstype.String, false).
		Constructor(userConstructor(t, "this.name = name")).
		AddFunctions(greet).
		Build())

	rebuilt, err := original.ToBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)
	assert.Equal(t, original.String(), rebuilt.String())

	derived := Must(original.ToBuilder().
		AddNewProperty("email", tstype.String, true).
		PromoteConstructorProperties(false).
		Build())
	assert.Len(t, derived.Properties(), 2)
	assert.Len(t, original.Properties(), 1)
	assert.True(t, original.PromoteConstructorProperties())
	assert.False(t, derived.PromoteConstructorProperties())
}

func TestToBuilderKeepsSingularSlots(t *testing.T) {
	original := Must(NewClassBuilder("A").
		SuperClass(tstype.Local("B")).
		Constructor(Must(NewConstructorBuilder().Build())).
		Build())

	_, err := original.ToBuilder().SuperClass(tstype.Local("C")).Build()
	assert.True(t, errors.Is(err, errors.ErrConflict))

	_, err = original.ToBuilder().Constructor(Must(NewConstructorBuilder().Build())).Build()
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestGettersReturnCopies(t *testing.T) {
	c := Must(NewClassBuilder("A").AddMixins(tstype.Local("I")).Build())
	mixins := c.Mixins()
	mixins[0] = tstype.Local("J")
	assert.Equal(t, "I", tstype.SimpleName(c.Mixins()[0]))
}

func TestNewClassBuilderFor(t *testing.T) {
	c := Must(NewClassBuilderFor(tstype.Imported("User", "./user")).Build())
	assert.Equal(t, "User", c.Name())
}

func TestStringMatchesEmit(t *testing.T) {
	c := Must(NewClassBuilder("User").
		AddModifiers(Export).
		AddNewProperty("name", tstype.String, false).
		Constructor(userConstructor(t, "this.name = name")).
		Build())

	var sb strings.Builder
	require.NoError(t, c.Emit(NewCodeWriter(&sb, DefaultIndent), tstype.NewScope()))
	assert.Equal(t, sb.String(), c.String())
}
