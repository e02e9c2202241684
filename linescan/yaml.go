package linescan

import "fmt"

const (
	// CommentPattern matches a full-line YAML comment. Group 1 is the
	// indentation, group 2 the comment text.
	CommentPattern = `^( *)# ?(.+)$`

	// MappingPattern matches a YAML mapping line. Group 1 is the indentation,
	// group 2 the key (word characters with inner spaces, never starting with
	// a sequence marker), group 3 the optional inline value.
	MappingPattern = `^( *)(\w+(?: +\w+)*): *(.+)?$`
)

// CommentMatcher returns a [Matcher] producing [Comment] tokens, with depth
// computed for the given indent width.
func CommentMatcher(indent int) (Matcher, error) {
	if indent < 1 {
		return Matcher{}, fmt.Errorf("%w: %d", ErrInvalidIndent, indent)
	}

	return NewMatcher(CommentPattern, func(m Match) (Token, bool) {
		return NewComment(m.Index, m.Line, leadingWidth(m.Groups[1])/indent, m.Groups[2]), true
	})
}

// MappingMatcher returns a [Matcher] producing [Mapping] tokens, with depth
// computed for the given indent width.
func MappingMatcher(indent int) (Matcher, error) {
	if indent < 1 {
		return Matcher{}, fmt.Errorf("%w: %d", ErrInvalidIndent, indent)
	}

	return NewMatcher(MappingPattern, func(m Match) (Token, bool) {
		return NewMapping(m.Index, m.Line, leadingWidth(m.Groups[1])/indent, m.Groups[2], m.Groups[3]), true
	})
}

// NewYAML returns a [Scanner] that recognizes YAML comment and mapping lines.
// The indent width must equal the one used by the serializer that produced
// the text, or depths will not line up with the document structure.
func NewYAML(indent int) (*Scanner, error) {
	comment, err := CommentMatcher(indent)
	if err != nil {
		return nil, err
	}

	mapping, err := MappingMatcher(indent)
	if err != nil {
		return nil, err
	}

	return NewScanner(nil, comment, mapping), nil
}
