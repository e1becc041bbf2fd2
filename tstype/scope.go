package tstype

import (
	"fmt"
	"sort"
	"strings"
)

// Scope tracks the names visible in one emitted file: types declared in the
// file and symbols imported from other modules. A Scope is not safe for
// concurrent use; each file being rendered owns its own.
type Scope struct {
	declared map[string]bool
	// local name -> symbol it stands for
	locals map[string]symbol
	// symbol -> local name
	bound map[symbol]string
}

type symbol struct {
	name string
	from string
}

// NewScope returns an empty scope
func NewScope() *Scope {
	return &Scope{
		declared: make(map[string]bool),
		locals:   make(map[string]symbol),
		bound:    make(map[symbol]string),
	}
}

// Declare records name as declared in the file itself. Imports of the same
// name from other modules will be aliased.
func (s *Scope) Declare(name string) {
	s.declared[name] = true
}

// Import registers name from module and returns the identifier the file
// should use for it.
func (s *Scope) Import(name, from string) string {
	sym := symbol{name: name, from: from}
	if local, ok := s.bound[sym]; ok {
		return local
	}
	local := name
	for n := 2; s.taken(local); n++ {
		local = fmt.Sprintf("%s%d", name, n)
	}
	s.locals[local] = sym
	s.bound[sym] = local
	return local
}

func (s *Scope) taken(local string) bool {
	if s.declared[local] {
		return true
	}
	_, ok := s.locals[local]
	return ok
}

// Modules returns the imported module names in sorted order
func (s *Scope) Modules() []string {
	seen := make(map[string]bool)
	var modules []string
	for sym := range s.bound {
		if !seen[sym.from] {
			seen[sym.from] = true
			modules = append(modules, sym.from)
		}
	}
	sort.Strings(modules)
	return modules
}

// Imports renders one import statement per module, symbols sorted by name
func (s *Scope) Imports() []string {
	byModule := make(map[string][]string)
	for sym, local := range s.bound {
		entry := sym.name
		if local != sym.name {
			entry = sym.name + " as " + local
		}
		byModule[sym.from] = append(byModule[sym.from], entry)
	}

	var lines []string
	for _, module := range s.Modules() {
		entries := byModule[module]
		sort.Strings(entries)
		lines = append(lines, fmt.Sprintf("import { %s } from '%s';", strings.Join(entries, ", "), module))
	}
	return lines
}
