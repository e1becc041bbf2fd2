package spec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/tstype"
)

func TestSelfAssignmentMatch(t *testing.T) {
	tests := []struct {
		body string
		name string
		want bool
	}{
		{"this.name = name;", "name", true},
		{"this.name = name", "name", true},
		{"  this.name = name ;  \n", "name", true},
		{"super();\nthis.name = name;\n", "name", true},
		{"foo(); this.name = name;\n", "name", true},
		{"if (ok) {\n  this.name = name;\n}\n", "name", true},
		{"this.$el = $el;", "$el", true},
		{"this.name = name2;", "name", false},
		{"this.names = name;", "name", false},
		{"this.name = name + 1;", "name", false},
		{"that.this.name = name;", "name", false},
		{"this.name=name;", "name", false},
		{"this.name = other;", "name", false},
		{"", "name", false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got := codeblock.Raw(tt.body).Match(selfAssignment(tt.name))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelfAssignmentRemoval(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"only statement", "this.name = name;\n", ""},
		{"no semicolon", "this.name = name", ""},
		{"crlf", "this.name = name;\r\n", ""},
		{"between statements", "a();\nthis.name = name;\nb();\n", "a();\nb();\n"},
		{"same line", "a(); this.name = name; b();\n", "a(); b();\n"},
		{"nested", "if (x) {\n  this.name = name;\n}\n", "if (x) {\n}\n"},
		{"repeated", "this.name = name;\nthis.name = name;\n", ""},
		{"other names untouched", "this.id = id;\nthis.name = name;\n", "this.id = id;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := codeblock.Raw(tt.body).ToBuilder().RemoveAll(selfAssignment("name")).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, code.String())
		})
	}
}

func TestPromotedProperties(t *testing.T) {
	withInit := Must(NewPropertyBuilder("count", tstype.Number).Initializer("%L", 0).Build())

	tests := []struct {
		name string
		prop PropertySpec
		ctor *FunctionBuilder
		want bool
	}{
		{
			name: "eligible",
			prop: Must(NewProperty("id", tstype.String, false)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.String, false).AddStatement("this.id = id"),
			want: true,
		},
		{
			name: "type mismatch",
			prop: Must(NewProperty("id", tstype.String, false)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.Number, false).AddStatement("this.id = id"),
		},
		{
			name: "untyped parameter",
			prop: Must(NewProperty("id", tstype.String, false)),
			ctor: NewConstructorBuilder().AddNewParameter("id", nil, false).AddStatement("this.id = id"),
		},
		{
			name: "optional mismatch",
			prop: Must(NewProperty("id", tstype.String, true)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.String, false).AddStatement("this.id = id"),
		},
		{
			name: "both optional",
			prop: Must(NewProperty("id", tstype.String, true)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.String, true).AddStatement("this.id = id"),
			want: true,
		},
		{
			name: "property has initializer",
			prop: withInit,
			ctor: NewConstructorBuilder().AddNewParameter("count", tstype.Number, false).AddStatement("this.count = count"),
		},
		{
			name: "not assigned",
			prop: Must(NewProperty("id", tstype.String, false)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.String, false).AddStatement("console.log(id)"),
		},
		{
			name: "assigned from another parameter",
			prop: Must(NewProperty("id", tstype.String, false)),
			ctor: NewConstructorBuilder().
				AddNewParameter("id", tstype.String, false).
				AddNewParameter("id2", tstype.String, false).
				AddStatement("this.id = id2"),
		},
		{
			name: "no matching parameter",
			prop: Must(NewProperty("id", tstype.String, false)),
			ctor: NewConstructorBuilder().AddNewParameter("key", tstype.String, false).AddStatement("this.id = key"),
		},
		{
			name: "static property",
			prop: Must(NewProperty("id", tstype.String, false, Static)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.String, false).AddStatement("this.id = id"),
		},
		{
			name: "accessor property",
			prop: Must(NewProperty("id", tstype.String, false, Accessor)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.String, false).AddStatement("this.id = id"),
		},
		{
			name: "private readonly property",
			prop: Must(NewProperty("id", tstype.String, false, Private, Readonly)),
			ctor: NewConstructorBuilder().AddNewParameter("id", tstype.String, false).AddStatement("this.id = id"),
			want: true,
		},
		{
			name: "same imported type",
			prop: Must(NewProperty("owner", tstype.Imported("User", "./user"), false)),
			ctor: NewConstructorBuilder().AddNewParameter("owner", tstype.Imported("User", "./user"), false).AddStatement("this.owner = owner"),
			want: true,
		},
		{
			name: "same name from another module",
			prop: Must(NewProperty("owner", tstype.Imported("User", "./user"), false)),
			ctor: NewConstructorBuilder().AddNewParameter("owner", tstype.Imported("User", "./legacy"), false).AddStatement("this.owner = owner"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Must(NewClassBuilder("C").
				AddProperties(tt.prop).
				Constructor(Must(tt.ctor.Build())).
				Build())
			promoted := c.PromotedProperties()
			if tt.want {
				require.Len(t, promoted, 1)
				assert.Equal(t, tt.prop, promoted[0])
			} else {
				assert.Empty(t, promoted)
			}
		})
	}
}

func TestPromotedPropertiesOrderAndMixedMembers(t *testing.T) {
	ctor := Must(NewConstructorBuilder().
		AddNewParameter("b", tstype.String, false).
		AddNewParameter("a", tstype.String, false).
		AddNewParameter("c", tstype.String, false).
		AddStatement("this.b = b").
		AddStatement("this.a = a").
		Build())
	c := Must(NewClassBuilder("Triple").
		AddNewProperty("a", tstype.String, false).
		AddNewProperty("b", tstype.String, false).
		AddNewProperty("c", tstype.String, false).
		Constructor(ctor).
		Build())

	promoted := c.PromotedProperties()
	require.Len(t, promoted, 2)
	assert.Equal(t, "a", promoted[0].Name())
	assert.Equal(t, "b", promoted[1].Name())

	want := "class Triple {\n" +
		"\n" +
		"  c: string;\n" +
		"\n" +
		"  constructor(public b: string, public a: string, c: string) {\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestNoPromotionWithoutConstructor(t *testing.T) {
	c := Must(NewClassBuilder("Bag").AddNewProperty("items", tstype.ArrayOf(tstype.Unknown), false).Build())
	assert.Empty(t, c.PromotedProperties())
	assert.Equal(t, "class Bag {\n\n  items: unknown[];\n\n}\n", c.String())
}

func TestPromotionLeavesSpecUntouched(t *testing.T) {
	c := Must(NewClassBuilder("User").
		AddNewProperty("name", tstype.String, false).
		Constructor(userConstructor(t, "this.name = name")).
		Build())
	_ = c.String()

	ctor, ok := c.Constructor()
	require.True(t, ok)
	assert.Equal(t, "this.name = name;\n", ctor.Body().String())
	assert.Len(t, c.Properties(), 1)
}

func TestStaticPropertyStaysMember(t *testing.T) {
	c := Must(NewClassBuilder("Counter").
		AddNewProperty("n", tstype.String, false, Static).
		Constructor(Must(NewConstructorBuilder().
			AddNewParameter("n", tstype.String, false).
			AddStatement("this.n = n").
			Build())).
		Build())

	want := "class Counter {\n" +
		"\n" +
		"  static n: string;\n" +
		"\n" +
		"  constructor(n: string) {\n" +
		"    this.n = n;\n" +
		"  }\n" +
		"\n" +
		"}\n"
	assert.Equal(t, want, c.String())
}

func TestPromotionKeepsPrivateUseRunesInBody(t *testing.T) {
	for _, glyph := range []string{"\uE000", "\uE001", "\uE002", "\uE003"} {
		t.Run(fmt.Sprintf("%U", []rune(glyph)[0]), func(t *testing.T) {
			ctor := Must(NewConstructorBuilder().
				AddNewParameter("x", tstype.Number, false).
				Body(codeblock.Raw("const icon = '" + glyph + "';\nthis.x = x;\n")).
				Build())
			c := Must(NewClassBuilder("Icon").
				AddNewProperty("x", tstype.Number, false).
				Constructor(ctor).
				Build())

			var sb strings.Builder
			require.NoError(t, c.Emit(NewCodeWriter(&sb, DefaultIndent), tstype.NewScope()))
			want := "class Icon {\n" +
				"\n" +
				"  constructor(public x: number) {\n" +
				"    const icon = '" + glyph + "';\n" +
				"  }\n" +
				"\n" +
				"}\n"
			assert.Equal(t, want, sb.String())
		})
	}
}
