// Package codeblock provides CodeBlock, an immutable fragment of TypeScript
// source used for function bodies, initializers, default values, decorator
// arguments and documentation.
//
// A CodeBlock is built from format strings with these placeholders:
//
//	%L  literal, emitted as-is (nested CodeBlocks are spliced in)
//	%S  string literal, single-quoted and escaped
//	%N  name, a string or a value with a Name() string method
//	%T  type reference (tstype.TypeName), rendered against the file's scope
//	%>  increase indentation
//	%<  decrease indentation
//	%%  a literal percent sign
//
// Type references stay symbolic until the block is rendered, so the same
// block renders with different import aliases in different files.
package codeblock

import (
	"fmt"
	"strings"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// SegmentKind identifies what a Segment carries
type SegmentKind uint8

const (
	// SegmentText is literal source text
	SegmentText SegmentKind = iota
	// SegmentType is a type reference
	SegmentType
	// SegmentIndent increases the indentation level
	SegmentIndent
	// SegmentUnindent decreases the indentation level
	SegmentUnindent
)

// Segment is one piece of a CodeBlock
type Segment struct {
	Kind SegmentKind
	Text string
	Type tstype.TypeName
}

// CodeBlock is an immutable fragment of source text
type CodeBlock struct {
	segments []Segment
}

// Of formats a CodeBlock. It returns an error marked errors.ErrInvalidFormat
// when the format and arguments do not agree.
func Of(format string, args ...interface{}) (CodeBlock, error) {
	return NewBuilder().Add(format, args...).Build()
}

// MustOf is like Of but panics on a malformed format. It is intended for
// formats that are constants in the calling code.
func MustOf(format string, args ...interface{}) CodeBlock {
	c, err := Of(format, args...)
	if err != nil {
		panic(err)
	}
	return c
}

// Raw returns a CodeBlock holding text verbatim, without placeholder expansion
func Raw(text string) CodeBlock {
	if text == "" {
		return CodeBlock{}
	}
	return CodeBlock{segments: []Segment{{Kind: SegmentText, Text: text}}}
}

// Join concatenates blocks with sep between them
func Join(blocks []CodeBlock, sep string) CodeBlock {
	b := NewBuilder()
	for i, block := range blocks {
		if i > 0 {
			b.appendText(sep)
		}
		b.AddCode(block)
	}
	return CodeBlock{segments: b.segments}
}

// IsEmpty reports whether the block has no content
func (c CodeBlock) IsEmpty() bool {
	return len(c.segments) == 0
}

// Segments returns a copy of the block's segments in order
func (c CodeBlock) Segments() []Segment {
	if len(c.segments) == 0 {
		return nil
	}
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Render returns the block's text with type references resolved against
// scope. Indentation markers are dropped.
func (c CodeBlock) Render(scope *tstype.Scope) string {
	var sb strings.Builder
	for _, seg := range c.segments {
		switch seg.Kind {
		case SegmentText:
			sb.WriteString(seg.Text)
		case SegmentType:
			sb.WriteString(seg.Type.Render(scope))
		}
	}
	return sb.String()
}

// String returns the block's text without import tracking
func (c CodeBlock) String() string {
	return c.Render(nil)
}

// ToBuilder returns a Builder seeded with the block's content
func (c CodeBlock) ToBuilder() *Builder {
	return &Builder{segments: c.Segments()}
}

// Builder accumulates a CodeBlock. The first malformed format is recorded
// and returned by Build; later calls keep appending.
type Builder struct {
	segments []Segment
	err      error
}

// NewBuilder returns an empty Builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends formatted code
func (b *Builder) Add(format string, args ...interface{}) *Builder {
	b.recordErr(b.format(format, args))
	return b
}

// AddStatement appends formatted code terminated by a semicolon and newline
func (b *Builder) AddStatement(format string, args ...interface{}) *Builder {
	b.Add(format, args...)
	b.appendText(";\n")
	return b
}

// AddCode appends another block
func (b *Builder) AddCode(c CodeBlock) *Builder {
	for _, seg := range c.segments {
		b.appendSegment(seg)
	}
	return b
}

// BeginControlFlow opens a braced block: `format {` followed by an indent
func (b *Builder) BeginControlFlow(format string, args ...interface{}) *Builder {
	b.Add(format, args...)
	b.appendText(" {\n")
	b.Indent()
	return b
}

// NextControlFlow closes the current braced block and opens another: `} format {`
func (b *Builder) NextControlFlow(format string, args ...interface{}) *Builder {
	b.Unindent()
	b.appendText("} ")
	b.Add(format, args...)
	b.appendText(" {\n")
	b.Indent()
	return b
}

// EndControlFlow closes the current braced block
func (b *Builder) EndControlFlow() *Builder {
	b.Unindent()
	b.appendText("}\n")
	return b
}

// Indent increases indentation for the code that follows
func (b *Builder) Indent() *Builder {
	b.appendSegment(Segment{Kind: SegmentIndent})
	return b
}

// Unindent decreases indentation for the code that follows
func (b *Builder) Unindent() *Builder {
	b.appendSegment(Segment{Kind: SegmentUnindent})
	return b
}

// IsEmpty reports whether nothing has been added
func (b *Builder) IsEmpty() bool {
	return len(b.segments) == 0
}

// Build returns the accumulated block, or the first format error
func (b *Builder) Build() (CodeBlock, error) {
	if b.err != nil {
		return CodeBlock{}, b.err
	}
	if len(b.segments) == 0 {
		return CodeBlock{}, nil
	}
	segments := make([]Segment, len(b.segments))
	copy(segments, b.segments)
	return CodeBlock{segments: segments}, nil
}

func (b *Builder) recordErr(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

func (b *Builder) appendText(text string) {
	b.appendSegment(Segment{Kind: SegmentText, Text: text})
}

// appendSegment merges adjacent text so pattern searches see contiguous text
func (b *Builder) appendSegment(seg Segment) {
	if seg.Kind == SegmentText {
		if seg.Text == "" {
			return
		}
		if n := len(b.segments); n > 0 && b.segments[n-1].Kind == SegmentText {
			b.segments[n-1].Text += seg.Text
			return
		}
	}
	b.segments = append(b.segments, seg)
}

func (b *Builder) format(format string, args []interface{}) error {
	next := 0
	var text strings.Builder
	flush := func() {
		b.appendText(text.String())
		text.Reset()
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			text.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return errors.NewInvalidFormatError("dangling '%%' at end of format %q", format)
		}
		i++
		verb := format[i]
		switch verb {
		case '%':
			text.WriteByte('%')
			continue
		case '>':
			flush()
			b.Indent()
			continue
		case '<':
			flush()
			b.Unindent()
			continue
		case 'L', 'S', 'N', 'T':
		default:
			return errors.NewInvalidFormatError("unknown placeholder %%%c in format %q", verb, format)
		}

		if next >= len(args) {
			return errors.NewInvalidFormatError("missing argument for %%%c in format %q", verb, format)
		}
		arg := args[next]
		next++

		switch verb {
		case 'L':
			if block, ok := arg.(CodeBlock); ok {
				flush()
				b.AddCode(block)
				continue
			}
			text.WriteString(literal(arg))
		case 'S':
			if arg == nil {
				text.WriteString("null")
				continue
			}
			text.WriteString(Quote(fmt.Sprint(arg)))
		case 'N':
			name, err := nameOf(arg)
			if err != nil {
				return errors.Wrapf(err, "format %q", format)
			}
			text.WriteString(name)
		case 'T':
			t, ok := arg.(tstype.TypeName)
			if !ok || t == nil {
				return errors.NewInvalidFormatError("%%T expects a type reference, got %T in format %q", arg, format)
			}
			flush()
			b.appendSegment(Segment{Kind: SegmentType, Type: t})
		}
	}
	flush()

	if next < len(args) {
		return errors.NewInvalidFormatError("%d unused arguments for format %q", len(args)-next, format)
	}
	return nil
}

func literal(arg interface{}) string {
	if arg == nil {
		return "null"
	}
	return fmt.Sprint(arg)
}

func nameOf(arg interface{}) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case interface{ Name() string }:
		return v.Name(), nil
	default:
		return "", errors.NewInvalidFormatError("%%N expects a string or named value, got %T", arg)
	}
}

// Quote returns s as a single-quoted TypeScript string literal
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
