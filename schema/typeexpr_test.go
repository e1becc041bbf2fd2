package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

func TestParseType(t *testing.T) {
	imports := map[string]string{"User": "./user"}
	user := tstype.Imported("User", "./user")

	tests := []struct {
		expr string
		want tstype.TypeName
	}{
		{"string", tstype.String},
		{"  undefined ", tstype.Undefined},
		{"User", user},
		{"Order", tstype.Local("Order")},
		{"ns.Thing", tstype.Local("ns.Thing")},
		{"User[]", tstype.ArrayOf(user)},
		{"string[][]", tstype.ArrayOf(tstype.ArrayOf(tstype.String))},
		{"Map<string, User[]>", tstype.Generic(tstype.Local("Map"), tstype.String, tstype.ArrayOf(user))},
		{"Promise<Array<number>>", tstype.Generic(tstype.Local("Promise"), tstype.Generic(tstype.Local("Array"), tstype.Number))},
		{"string | null", tstype.UnionOf(tstype.String, tstype.Null)},
		{"| 'a' | 'b'", tstype.UnionOf(tstype.Literal{Text: "'a'"}, tstype.Literal{Text: "'b'"})},
		{"(string | number)[]", tstype.ArrayOf(tstype.UnionOf(tstype.String, tstype.Number))},
		{"(User)", user},
		{"1 | -2.5", tstype.UnionOf(tstype.Literal{Text: "1"}, tstype.Literal{Text: "-2.5"})},
		{`"it's"`, tstype.Literal{Text: `"it's"`}},
		{"Box<true>", tstype.Generic(tstype.Local("Box"), tstype.Literal{Text: "true"})},
		{"Result<string | Error, void>", tstype.Generic(tstype.Local("Result"), tstype.UnionOf(tstype.String, tstype.Local("Error")), tstype.Void)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseType(tt.expr, imports)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeRendersBack(t *testing.T) {
	for _, expr := range []string{
		"Map<string, number[]>",
		"(string | number)[]",
		"'on' | 'off' | undefined",
		"Record<string, Promise<void>>",
	} {
		got, err := ParseType(expr, nil)
		require.NoError(t, err, expr)
		assert.Equal(t, expr, got.Render(nil))
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		expr string
		msg  string
	}{
		{"", "empty type"},
		{"   ", "empty type"},
		{"Map<string", `expected ">", got end of type`},
		{"string[", `expected "]"`},
		{"(string", `expected ")"`},
		{"a b", `unexpected "b"`},
		{"'open", "unterminated string literal"},
		{"A & B", `unexpected '&'`},
		{"<T>", `unexpected "<"`},
		{"string |", "unexpected end of type"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := ParseType(tt.expr, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidDescription))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestResolverTypeParameters(t *testing.T) {
	r := newResolver(map[string]string{"T": "./t"}).with([]TypeParam{{Name: "T"}})

	got, err := r.parse("T[]")
	require.NoError(t, err)
	assert.Equal(t, tstype.ArrayOf(tstype.Var("T")), got)

	outer := newResolver(map[string]string{"T": "./t"})
	got, err = outer.parse("T")
	require.NoError(t, err)
	assert.Equal(t, tstype.Imported("T", "./t"), got)
}

func TestClassName(t *testing.T) {
	tests := map[string]string{
		"user":              "User",
		"user_profile":      "UserProfile",
		"user-profile":      "UserProfile",
		"models/user.store": "UserStore",
		"HTTPClient":        "HTTPClient",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ClassName(in), in)
	}
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "models/user", ModuleName("models/user.yaml"))
	assert.Equal(t, "user", ModuleName("user.toml"))
	assert.Equal(t, "a.b/c", ModuleName("a.b/c.json"))
}
