package spec

import (
	"bytes"
	"io"
	"strings"

	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// FileSpec is a TypeScript module: a header comment, the imports its members
// need, and the members themselves.
type FileSpec struct {
	module  string
	comment codeblock.CodeBlock
	members []fileMember
	indent  string
}

type fileMember struct {
	class *ClassSpec
	code  codeblock.CodeBlock
}

// Module returns the module path the file is written to, without extension
func (f FileSpec) Module() string { return f.module }

// Classes returns the classes declared in the file
func (f FileSpec) Classes() []ClassSpec {
	var out []ClassSpec
	for _, m := range f.members {
		if m.class != nil {
			out = append(out, *m.class)
		}
	}
	return out
}

// WriteTo renders the file to out
func (f FileSpec) WriteTo(out io.Writer) (int64, error) {
	scope := tstype.NewScope()
	for _, c := range f.Classes() {
		scope.Declare(c.name)
	}

	// Members render first so the scope knows every import.
	var body bytes.Buffer
	w := NewCodeWriter(&body, f.indent)
	for i, m := range f.members {
		if i > 0 {
			w.Emit("\n")
		}
		if m.class != nil {
			if err := m.class.Emit(w, scope); err != nil {
				return 0, errors.Wrapf(err, "rendering %s", f.module)
			}
			continue
		}
		w.EmitCode(m.code, scope)
		w.ensureNewline()
	}
	if err := w.Err(); err != nil {
		return 0, errors.Wrapf(err, "rendering %s", f.module)
	}

	var head bytes.Buffer
	if !f.comment.IsEmpty() {
		for _, line := range strings.Split(strings.TrimRight(f.comment.Render(scope), "\n"), "\n") {
			if line == "" {
				head.WriteString("//\n")
				continue
			}
			head.WriteString("// " + line + "\n")
		}
		head.WriteString("\n")
	}
	if imports := scope.Imports(); len(imports) > 0 {
		head.WriteString(strings.Join(imports, "\n"))
		head.WriteString("\n\n")
	}

	n, err := head.WriteTo(out)
	if err != nil {
		return n, err
	}
	m, err := body.WriteTo(out)
	return n + m, err
}

// String renders the file, or returns the rendering error's message
func (f FileSpec) String() string {
	var sb strings.Builder
	if _, err := f.WriteTo(&sb); err != nil {
		return err.Error()
	}
	return sb.String()
}

// FileBuilder builds a FileSpec
type FileBuilder struct {
	module  string
	comment *codeblock.Builder
	members []fileMember
	indent  string
	names   map[string]bool
	err     error
}

// NewFileBuilder starts a file for module, e.g. "models/user"
func NewFileBuilder(module string) *FileBuilder {
	return &FileBuilder{
		module:  module,
		comment: codeblock.NewBuilder(),
		indent:  DefaultIndent,
		names:   make(map[string]bool),
	}
}

// AddComment appends to the header comment
func (b *FileBuilder) AddComment(format string, args ...interface{}) *FileBuilder {
	b.comment.Add(format, args...)
	return b
}

// AddClass appends a class; class names must be unique within the file
func (b *FileBuilder) AddClass(c ClassSpec) *FileBuilder {
	if b.names[c.name] {
		b.err = errors.CombineErrors(b.err, errors.NewConflictError("class %s declared twice in %s", c.name, b.module))
		return b
	}
	b.names[c.name] = true
	b.members = append(b.members, fileMember{class: &c})
	return b
}

// AddCode appends free-standing code such as a type alias or a constant
func (b *FileBuilder) AddCode(code codeblock.CodeBlock) *FileBuilder {
	b.members = append(b.members, fileMember{code: code})
	return b
}

// Indent sets the indentation unit
func (b *FileBuilder) Indent(indent string) *FileBuilder {
	b.indent = indent
	return b
}

// Build returns the FileSpec
func (b *FileBuilder) Build() (FileSpec, error) {
	comment, err := b.comment.Build()
	if err = errors.CombineErrors(b.err, err); err != nil {
		return FileSpec{}, err
	}
	if b.module == "" {
		return FileSpec{}, errors.NewInvalidNameError("file requires a module name")
	}
	return FileSpec{
		module:  b.module,
		comment: comment,
		members: cloneSlice(b.members),
		indent:  b.indent,
	}, nil
}
