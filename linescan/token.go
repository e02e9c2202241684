package linescan

// Token is the classification of one physical line.
//
// The scanner never modifies a token after yielding it, and each iteration
// of [Scan.All] yields fresh tokens. Callers may change the exported fields
// of a [Comment] or [Mapping] they hold without affecting the scan. The
// concrete types are [*Line], [*Comment], and [*Mapping].
type Token interface {
	// Index is the zero-based line number within the scanned content.
	Index() int
	// Text is the raw line without its line terminator.
	Text() string
}

// Line is a line that no matcher classified.
type Line struct {
	text  string
	index int
}

// NewLine creates a generic [Line] token.
func NewLine(index int, text string) *Line {
	return &Line{index: index, text: text}
}

// Index implements [Token].
func (l *Line) Index() int { return l.index }

// Text implements [Token].
func (l *Line) Text() string { return l.text }

// Comment is a full-line comment.
type Comment struct {
	Line

	// Content is the comment text without the marker and the single
	// optional space following it.
	Content string
	// Depth is the nesting depth derived from the leading whitespace.
	Depth int
}

// NewComment creates a [Comment] token.
func NewComment(index int, text string, depth int, content string) *Comment {
	return &Comment{
		Line:    Line{index: index, text: text},
		Depth:   depth,
		Content: content,
	}
}

// Mapping is a "key: value" line. The value is optional; a mapping that
// opens a nested section has none.
type Mapping struct {
	Line

	Key   string
	Value string
	Depth int
	// HasValue reports whether an inline value follows the separator.
	HasValue bool
}

// NewMapping creates a [Mapping] token. An empty value means no inline
// value.
func NewMapping(index int, text string, depth int, key, value string) *Mapping {
	return &Mapping{
		Line:     Line{index: index, text: text},
		Depth:    depth,
		Key:      key,
		Value:    value,
		HasValue: value != "",
	}
}
