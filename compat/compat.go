// Package compat checks class declarations against the TypeScript version
// the generated code is compiled with.
package compat

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/spec"
	"github.com/teranos/classgen/tstype"
)

// Feature is a language feature that not every TypeScript version supports
type Feature struct {
	Name  string
	Since string
}

var (
	// OverrideModifier is the override keyword on members and parameter properties
	OverrideModifier = Feature{Name: "override modifier", Since: "4.3"}
	// AccessorModifier is the auto-accessor keyword on properties
	AccessorModifier = Feature{Name: "accessor modifier", Since: "4.9"}
	// TypeParameterDefault is `T = Default` in a type parameter list
	TypeParameterDefault = Feature{Name: "type parameter default", Since: "2.3"}
)

// Target is a parsed TypeScript version
type Target struct {
	version *semver.Version
}

// ParseTarget parses a TypeScript version such as "5.4" or "4.9.5"
func ParseTarget(s string) (Target, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Target{}, errors.WithHint(
			errors.Mark(errors.Wrapf(err, "invalid TypeScript target %q", s), errors.ErrUnsupportedTarget),
			"use a version such as 5.4 or 4.9.5",
		)
	}
	return Target{version: v}, nil
}

// String returns the target version
func (t Target) String() string {
	if t.version == nil {
		return ""
	}
	return t.version.Original()
}

// Supports reports whether the target compiles f
func (t Target) Supports(f Feature) bool {
	constraint, err := semver.NewConstraint(">= " + f.Since)
	if err != nil {
		// Since values are literals in this package
		panic(err)
	}
	return constraint.Check(t.version)
}

// Check reports every feature used by c that target does not support.
// An empty target disables the check.
func Check(c spec.ClassSpec, target string) error {
	if target == "" {
		return nil
	}
	t, err := ParseTarget(target)
	if err != nil {
		return err
	}
	return t.Check(c)
}

// CheckFile runs Check on every class in f and reports all violations together
func CheckFile(f spec.FileSpec, target string) error {
	if target == "" {
		return nil
	}
	t, err := ParseTarget(target)
	if err != nil {
		return err
	}
	var problems []string
	for _, c := range f.Classes() {
		problems = append(problems, t.problems(c)...)
	}
	return t.report(f.Module(), problems)
}

// Check reports every feature used by c that t does not support
func (t Target) Check(c spec.ClassSpec) error {
	return t.report("class "+c.Name(), t.problems(c))
}

func (t Target) report(what string, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	err := errors.NewUnsupportedTargetError("%s does not compile with TypeScript %s: %s",
		what, t, strings.Join(problems, "; "))
	return errors.WithHint(err, "raise generate.target or drop the modifiers")
}

func (t Target) problems(c spec.ClassSpec) []string {
	v := &visitor{target: t, class: c.Name()}

	v.typeVariables("class "+c.Name(), c.TypeVariables())
	for _, p := range c.Properties() {
		v.modifiers("property "+p.Name(), p.Modifiers())
	}
	if ctor, ok := c.Constructor(); ok {
		for _, p := range ctor.Parameters() {
			v.modifiers("constructor parameter "+p.Name(), p.Modifiers())
		}
	}
	for _, f := range c.Functions() {
		what := f.Kind().String() + " " + f.Name()
		v.modifiers(what, f.Modifiers())
		v.typeVariables(what, f.TypeVariables())
	}
	return v.problems
}

type visitor struct {
	target   Target
	class    string
	problems []string
}

func (v *visitor) require(f Feature, what string) {
	if v.target.Supports(f) {
		return
	}
	v.problems = append(v.problems, fmt.Sprintf("%s in class %s uses the %s (needs %s)", what, v.class, f.Name, f.Since))
}

func (v *visitor) modifiers(what string, ms []spec.Modifier) {
	for _, m := range ms {
		switch m {
		case spec.Override:
			v.require(OverrideModifier, what)
		case spec.Accessor:
			v.require(AccessorModifier, what)
		}
	}
}

func (v *visitor) typeVariables(what string, vars []tstype.TypeVariable) {
	for _, tv := range vars {
		if tv.Default != nil {
			v.require(TypeParameterDefault, what)
			return
		}
	}
}
