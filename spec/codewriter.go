package spec

import (
	"io"
	"strings"

	"github.com/teranos/classgen/codeblock"
	"github.com/teranos/classgen/tstype"
)

// DefaultIndent is used when a CodeWriter is created without one
const DefaultIndent = "  "

// CodeWriter emits TypeScript source with indentation. It records the first
// write error and ignores output after it; Err reports it.
type CodeWriter struct {
	out         io.Writer
	indent      string
	level       int
	atLineStart bool
	err         error
}

// NewCodeWriter returns a writer emitting to out, indenting each level by indent
func NewCodeWriter(out io.Writer, indent string) *CodeWriter {
	if indent == "" {
		indent = DefaultIndent
	}
	return &CodeWriter{out: out, indent: indent, atLineStart: true}
}

// Err returns the first error encountered while writing
func (w *CodeWriter) Err() error {
	return w.err
}

func (w *CodeWriter) fail(err error) {
	if err != nil && w.err == nil {
		w.err = err
	}
}

// Indent increases the indentation level
func (w *CodeWriter) Indent() {
	w.level++
}

// Unindent decreases the indentation level
func (w *CodeWriter) Unindent() {
	if w.level > 0 {
		w.level--
	}
}

func (w *CodeWriter) write(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, err := io.WriteString(w.out, s)
	w.fail(err)
}

// Emit writes literal text. Lines are indented when they start; blank lines
// are left without trailing whitespace.
func (w *CodeWriter) Emit(s string) {
	for s != "" {
		nl := strings.IndexByte(s, '\n')
		line := s
		if nl >= 0 {
			line = s[:nl]
		}
		if line != "" {
			if w.atLineStart {
				w.write(strings.Repeat(w.indent, w.level))
			}
			w.write(line)
			w.atLineStart = false
		}
		if nl < 0 {
			return
		}
		w.write("\n")
		w.atLineStart = true
		s = s[nl+1:]
	}
}

// ensureNewline terminates a partially written line
func (w *CodeWriter) ensureNewline() {
	if !w.atLineStart {
		w.Emit("\n")
	}
}

// EmitCode writes a code block, resolving its type references against scope
// and applying its indentation markers.
func (w *CodeWriter) EmitCode(code codeblock.CodeBlock, scope *tstype.Scope) {
	for _, seg := range code.Segments() {
		switch seg.Kind {
		case codeblock.SegmentText:
			w.Emit(seg.Text)
		case codeblock.SegmentType:
			w.Emit(seg.Type.Render(scope))
		case codeblock.SegmentIndent:
			w.Indent()
		case codeblock.SegmentUnindent:
			w.Unindent()
		}
	}
}

// EmitBody writes ` {`, the indented block, and the closing brace
func (w *CodeWriter) EmitBody(body codeblock.CodeBlock, scope *tstype.Scope) {
	w.Emit(" {\n")
	w.Indent()
	w.EmitCode(body, scope)
	w.ensureNewline()
	w.Unindent()
	w.Emit("}\n")
}

// EmitDoc writes a JSDoc block. Empty documentation writes nothing.
func (w *CodeWriter) EmitDoc(doc codeblock.CodeBlock, scope *tstype.Scope) {
	if doc.IsEmpty() {
		return
	}
	text := strings.TrimRight(doc.Render(scope), "\n")
	w.Emit("/**\n")
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			w.Emit(" *\n")
			continue
		}
		w.Emit(" * " + line + "\n")
	}
	w.Emit(" */\n")
}

// EmitInlineDoc writes documentation on one line, for positions such as a
// parameter list where a block comment would break the layout.
func (w *CodeWriter) EmitInlineDoc(doc codeblock.CodeBlock, scope *tstype.Scope) {
	if doc.IsEmpty() {
		return
	}
	text := strings.Join(strings.Fields(doc.Render(scope)), " ")
	w.Emit("/** " + text + " */ ")
}

// EmitModifiers writes modifiers in canonical order, each followed by a
// space, skipping those in implicit.
func (w *CodeWriter) EmitModifiers(modifiers []Modifier, implicit ...Modifier) {
	skip := setOf(implicit...)
	for _, m := range canonical(modifiers) {
		if skip[m] {
			continue
		}
		w.Emit(string(m) + " ")
	}
}

// EmitDecorators writes decorators in declaration order. Inline decorators
// are separated by spaces; otherwise each is written on its own line.
func (w *CodeWriter) EmitDecorators(decorators []DecoratorSpec, inline bool, scope *tstype.Scope) {
	for _, d := range decorators {
		d.emit(w, scope)
		if inline {
			w.Emit(" ")
		} else {
			w.Emit("\n")
		}
	}
}

// EmitTypeVariables writes <T extends U, V> when vars is non-empty
func (w *CodeWriter) EmitTypeVariables(vars []tstype.TypeVariable, scope *tstype.Scope) {
	if len(vars) == 0 {
		return
	}
	decls := make([]string, len(vars))
	for i, v := range vars {
		decls[i] = v.Declaration(scope)
	}
	w.Emit("<" + strings.Join(decls, ", ") + ">")
}

// EmitParameters writes a parenthesised parameter list. Each parameter,
// the rest parameter last, is written by emit so callers can substitute
// their own rendering.
func (w *CodeWriter) EmitParameters(params []ParameterSpec, rest *ParameterSpec, emit func(p ParameterSpec, isRest bool)) {
	w.Emit("(")
	for i, p := range params {
		if i > 0 {
			w.Emit(", ")
		}
		emit(p, false)
	}
	if rest != nil {
		if len(params) > 0 {
			w.Emit(", ")
		}
		emit(*rest, true)
	}
	w.Emit(")")
}
