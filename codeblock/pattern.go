package codeblock

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/tstype"
)

// Non-text segments are swapped for private-use runes while a pattern runs
// over the text, then restored in order. Text that contains one of these
// runes has it prefixed with markEscape so it survives the round trip.
const (
	markType     = '\uE000'
	markIndent   = '\uE001'
	markUnindent = '\uE002'
	markEscape   = '\uE003'
)

func isMark(r rune) bool {
	return r >= markType && r <= markEscape
}

func encode(segments []Segment) (string, []tstype.TypeName) {
	var sb strings.Builder
	var types []tstype.TypeName
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentText:
			for _, r := range seg.Text {
				if isMark(r) {
					sb.WriteRune(markEscape)
				}
				sb.WriteRune(r)
			}
		case SegmentType:
			sb.WriteRune(markType)
			types = append(types, seg.Type)
		case SegmentIndent:
			sb.WriteRune(markIndent)
		case SegmentUnindent:
			sb.WriteRune(markUnindent)
		}
	}
	return sb.String(), types
}

func decode(s string, types []tstype.TypeName) ([]Segment, error) {
	b := &Builder{}
	var text strings.Builder
	flush := func() {
		b.appendText(text.String())
		text.Reset()
	}
	next := 0
	escaped := false
	for _, r := range s {
		if escaped {
			text.WriteRune(r)
			escaped = false
			continue
		}
		switch r {
		case markEscape:
			escaped = true
		case markType:
			if next == len(types) {
				return nil, errors.New("unexpected type reference marker")
			}
			flush()
			b.appendSegment(Segment{Kind: SegmentType, Type: types[next]})
			next++
		case markIndent:
			flush()
			b.appendSegment(Segment{Kind: SegmentIndent})
		case markUnindent:
			flush()
			b.appendSegment(Segment{Kind: SegmentUnindent})
		default:
			text.WriteRune(r)
		}
	}
	if escaped {
		return nil, errors.New("dangling escape marker")
	}
	if next != len(types) {
		return nil, errors.Newf("%d of %d type references lost", len(types)-next, len(types))
	}
	flush()
	return b.segments, nil
}

// Match reports whether pattern matches the block's text. Type references
// and indentation markers are opaque to the pattern, and private-use runes
// U+E000 to U+E003 in the text are seen with an escape rune before them. A pattern that fails
// to run (for example on timeout) does not match.
func (c CodeBlock) Match(pattern *regexp2.Regexp) bool {
	text, _ := encode(c.segments)
	ok, err := pattern.MatchString(text)
	return err == nil && ok
}

// RemoveAll deletes every match of pattern from the accumulated text.
// Patterns must not match the opaque markers standing in for type
// references; a replacement that drops one is reported by Build.
func (b *Builder) RemoveAll(pattern *regexp2.Regexp) *Builder {
	text, types := encode(b.segments)
	replaced, err := pattern.Replace(text, "", -1, -1)
	if err != nil {
		b.recordErr(errors.Wrapf(err, "removing %s", pattern.String()))
		return b
	}
	segments, err := decode(replaced, types)
	if err != nil {
		b.recordErr(errors.Mark(errors.Wrapf(err, "pattern %s removed a type reference or marker", pattern.String()), errors.ErrInvalidFormat))
		return b
	}
	b.segments = segments
	return b
}
