package spec

import (
	"github.com/dlclark/regexp2"

	"github.com/teranos/classgen/tstype"
)

// selfAssignment matches the statement `this.<name> = <name>` where a
// statement may start (start of body, after a newline or a semicolon) and
// where one may end (a semicolon, or the end of the line or body), allowing
// trailing horizontal whitespace. When the statement fills its line, the
// line break is matched too so removal leaves no blank line. Conditionals
// are not understood: an assignment inside an if block still matches.
func selfAssignment(name string) *regexp2.Regexp {
	stmt := `this\.` + regexp2.Escape(name) + ` = ` + regexp2.Escape(name)
	pattern := `(?<=\A|\n)[ \t]*` + stmt + `[ \t]*;?[ \t\f\v\r]*(?:\n|\z)` +
		`|(?<=\A|\n|;)[ \t]*` + stmt + `[ \t]*(?:;|(?=[\f\v\r]*(?:\n|\z)))`
	return regexp2.MustCompile(pattern, regexp2.None)
}

// constructorProperties returns the properties that can be declared as
// constructor parameter properties, keyed by name. A property qualifies when
// the constructor has a regular parameter of the same name, type and
// optionality, the property has no initializer, and the constructor body
// assigns the parameter to it verbatim. Properties carrying a modifier a
// parameter cannot take (static, declare, accessor, abstract) stay members.
func (c ClassSpec) constructorProperties() map[string]PropertySpec {
	if c.constructor == nil || !c.promote {
		return nil
	}
	ctor := *c.constructor

	found := make(map[string]PropertySpec)
	for _, prop := range c.properties {
		param, ok := ctor.Parameter(prop.name)
		if !ok {
			continue
		}
		if !tstype.Equal(param.typ, prop.typ) || param.optional != prop.optional {
			continue
		}
		if prop.HasInitializer() || !allModifiersIn(prop.modifiers, parameterModifiers) {
			continue
		}
		if !ctor.body.Match(selfAssignment(prop.name)) {
			continue
		}
		found[prop.name] = prop
	}
	return found
}

// PromotedProperties returns, in declaration order, the properties that
// Emit declares as constructor parameter properties instead of class members
func (c ClassSpec) PromotedProperties() []PropertySpec {
	found := c.constructorProperties()
	var out []PropertySpec
	for _, prop := range c.properties {
		if p, ok := found[prop.name]; ok {
			out = append(out, p)
			delete(found, prop.name)
		}
	}
	return out
}
