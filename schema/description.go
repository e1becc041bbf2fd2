// Package schema reads declarative class descriptions from YAML, TOML or
// JSON files and turns them into file specs ready to emit.
package schema

// File describes one generated TypeScript module
type File struct {
	// Module is the output path without extension; derived from the
	// description's file name when empty
	Module string `yaml:"module" toml:"module" json:"module,omitempty"`

	// Header is written as a line comment at the top of the module
	Header string `yaml:"header" toml:"header" json:"header,omitempty"`

	// Imports maps an imported symbol to the module it comes from
	Imports map[string]string `yaml:"imports" toml:"imports" json:"imports,omitempty"`

	Classes []Class `yaml:"classes" toml:"classes" json:"classes,omitempty"`
}

// Class describes a class declaration
type Class struct {
	Name       string      `yaml:"name" toml:"name" json:"name,omitempty"`
	Doc        string      `yaml:"doc" toml:"doc" json:"doc,omitempty"`
	Modifiers  []string    `yaml:"modifiers" toml:"modifiers" json:"modifiers,omitempty"`
	Decorators []Decorator `yaml:"decorators" toml:"decorators" json:"decorators,omitempty"`
	TypeParams []TypeParam `yaml:"type_params" toml:"type_params" json:"type_params,omitempty"`
	Extends    string      `yaml:"extends" toml:"extends" json:"extends,omitempty"`
	Implements []string    `yaml:"implements" toml:"implements" json:"implements,omitempty"`

	// Promote overrides generate.promote_constructor_properties for this class
	Promote *bool `yaml:"promote" toml:"promote" json:"promote,omitzero"`

	Properties  []Property `yaml:"properties" toml:"properties" json:"properties,omitempty"`
	Constructor *Function  `yaml:"constructor" toml:"constructor" json:"constructor,omitempty"`
	Methods     []Function `yaml:"methods" toml:"methods" json:"methods,omitempty"`
}

// Decorator describes @Name or @Name(args...)
type Decorator struct {
	Name string   `yaml:"name" toml:"name" json:"name"`
	Args []string `yaml:"args" toml:"args" json:"args,omitempty"`
	// Call renders empty parentheses when there are no arguments
	Call bool `yaml:"call" toml:"call" json:"call,omitzero"`
}

// TypeParam describes a type parameter: Name extends Extends = Default
type TypeParam struct {
	Name    string `yaml:"name" toml:"name" json:"name"`
	Extends string `yaml:"extends" toml:"extends" json:"extends,omitempty"`
	Default string `yaml:"default" toml:"default" json:"default,omitempty"`
}

// Property describes a class property
type Property struct {
	Name       string      `yaml:"name" toml:"name" json:"name"`
	Type       string      `yaml:"type" toml:"type" json:"type,omitempty"`
	Doc        string      `yaml:"doc" toml:"doc" json:"doc,omitempty"`
	Optional   bool        `yaml:"optional" toml:"optional" json:"optional,omitzero"`
	Modifiers  []string    `yaml:"modifiers" toml:"modifiers" json:"modifiers,omitempty"`
	Decorators []Decorator `yaml:"decorators" toml:"decorators" json:"decorators,omitempty"`
	Init       string      `yaml:"init" toml:"init" json:"init,omitempty"`
}

// Param describes a function parameter
type Param struct {
	Name       string      `yaml:"name" toml:"name" json:"name"`
	Type       string      `yaml:"type" toml:"type" json:"type,omitempty"`
	Optional   bool        `yaml:"optional" toml:"optional" json:"optional,omitzero"`
	Default    string      `yaml:"default" toml:"default" json:"default,omitempty"`
	Modifiers  []string    `yaml:"modifiers" toml:"modifiers" json:"modifiers,omitempty"`
	Decorators []Decorator `yaml:"decorators" toml:"decorators" json:"decorators,omitempty"`
}

// Function describes a method, accessor, factory or the constructor. Body
// is TypeScript source, copied as written.
type Function struct {
	Name       string      `yaml:"name" toml:"name" json:"name,omitempty"`
	Kind       string      `yaml:"kind" toml:"kind" json:"kind,omitempty"`
	Doc        string      `yaml:"doc" toml:"doc" json:"doc,omitempty"`
	Modifiers  []string    `yaml:"modifiers" toml:"modifiers" json:"modifiers,omitempty"`
	Decorators []Decorator `yaml:"decorators" toml:"decorators" json:"decorators,omitempty"`
	TypeParams []TypeParam `yaml:"type_params" toml:"type_params" json:"type_params,omitempty"`
	Params     []Param     `yaml:"params" toml:"params" json:"params,omitempty"`
	Rest       *Param      `yaml:"rest" toml:"rest" json:"rest,omitempty"`
	Returns    string      `yaml:"returns" toml:"returns" json:"returns,omitempty"`
	Body       string      `yaml:"body" toml:"body" json:"body,omitempty"`
}
