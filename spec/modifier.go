package spec

import (
	"sort"
	"strings"

	"github.com/teranos/classgen/errors"
)

// Modifier is a declaration keyword such as export or readonly
type Modifier string

const (
	Export    Modifier = "export"
	Declare   Modifier = "declare"
	Default   Modifier = "default"
	Public    Modifier = "public"
	Protected Modifier = "protected"
	Private   Modifier = "private"
	Static    Modifier = "static"
	Abstract  Modifier = "abstract"
	Override  Modifier = "override"
	Readonly  Modifier = "readonly"
	Accessor  Modifier = "accessor"
	Async     Modifier = "async"
)

// modifierOrder is the order TypeScript accepts modifiers in
var modifierOrder = []Modifier{
	Export, Declare, Default,
	Public, Protected, Private,
	Static, Abstract, Override, Readonly, Accessor, Async,
}

var modifierRank = func() map[Modifier]int {
	rank := make(map[Modifier]int, len(modifierOrder))
	for i, m := range modifierOrder {
		rank[m] = i
	}
	return rank
}()

// ParseModifier returns the modifier spelled s
func ParseModifier(s string) (Modifier, error) {
	m := Modifier(strings.TrimSpace(s))
	if _, ok := modifierRank[m]; !ok {
		return "", errors.NewInvalidModifierError("unknown modifier %q", s)
	}
	return m, nil
}

type modifierSet map[Modifier]bool

func setOf(ms ...Modifier) modifierSet {
	s := make(modifierSet, len(ms))
	for _, m := range ms {
		s[m] = true
	}
	return s
}

// Legal modifiers per declaration position
var (
	classModifiers     = setOf(Export, Declare, Default, Abstract)
	propertyModifiers  = setOf(Declare, Public, Protected, Private, Static, Abstract, Override, Readonly, Accessor)
	functionModifiers  = setOf(Public, Protected, Private, Static, Abstract, Override, Async)
	parameterModifiers = setOf(Public, Protected, Private, Override, Readonly)
	visibility         = setOf(Public, Protected, Private)

	// any of these turns a constructor parameter into a property
	parameterPropertyModifiers = setOf(Public, Protected, Private, Readonly)
)

// canonical deduplicates ms and sorts it into emission order
func canonical(ms []Modifier) []Modifier {
	if len(ms) == 0 {
		return nil
	}
	seen := make(modifierSet, len(ms))
	out := make([]Modifier, 0, len(ms))
	for _, m := range ms {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return modifierRank[out[i]] < modifierRank[out[j]]
	})
	return out
}

// union merges declared modifiers with defaults without touching either slice
func union(declared []Modifier, defaults ...Modifier) []Modifier {
	merged := make([]Modifier, 0, len(declared)+len(defaults))
	merged = append(merged, declared...)
	merged = append(merged, defaults...)
	return canonical(merged)
}

func hasModifier(ms []Modifier, m Modifier) bool {
	for _, have := range ms {
		if have == m {
			return true
		}
	}
	return false
}

func hasAnyModifier(ms []Modifier, set modifierSet) bool {
	for _, m := range ms {
		if set[m] {
			return true
		}
	}
	return false
}

func allModifiersIn(ms []Modifier, set modifierSet) bool {
	for _, m := range ms {
		if !set[m] {
			return false
		}
	}
	return true
}

// checkModifiers validates ms against the modifiers legal for what
func checkModifiers(what string, allowed modifierSet, ms []Modifier) error {
	visible := 0
	for _, m := range canonical(ms) {
		if _, known := modifierRank[m]; !known {
			return errors.NewInvalidModifierError("unknown modifier %q on %s", m, what)
		}
		if !allowed[m] {
			return errors.NewInvalidModifierError("modifier %q is not allowed on %s", m, what)
		}
		if visibility[m] {
			visible++
		}
	}
	if visible > 1 {
		return errors.NewInvalidModifierError("%s declares more than one visibility", what)
	}
	return nil
}
