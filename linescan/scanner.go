package linescan

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"
)

var (
	// ErrInvalidPattern indicates a matcher pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidIndent indicates an indent width below one.
	ErrInvalidIndent = errors.New("invalid indent")
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Match is the context handed to a [MapFunc] when a matcher's pattern
// matched a whole line.
type Match struct {
	Line string
	// Groups holds the submatches; Groups[0] is the whole line. Groups that
	// did not participate in the match are empty.
	Groups []string
	Index  int
}

// MapFunc maps a matched line to a token. Returning false passes the line on
// to the next matcher.
type MapFunc func(m Match) (Token, bool)

// Matcher pairs a pattern with the function that maps matching lines.
type Matcher struct {
	Pattern *regexp.Regexp
	Map     MapFunc
}

// NewMatcher compiles expr into a [Matcher]. The expression is anchored at
// both ends, so alternations that only match the whole line through a later
// branch are still found.
func NewMatcher(expr string, fn MapFunc) (Matcher, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return Matcher{}, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return Matcher{Pattern: re, Map: fn}, nil
}

// MustMatcher is like [NewMatcher] but panics if expr does not compile.
func MustMatcher(expr string, fn MapFunc) Matcher {
	m, err := NewMatcher(expr, fn)
	if err != nil {
		panic(err)
	}

	return m
}

// match returns the submatches of line if the pattern matches all of it.
func (m Matcher) match(line string) ([]string, bool) {
	loc := m.Pattern.FindStringSubmatchIndex(line)
	if loc == nil || loc[0] != 0 || loc[1] != len(line) {
		return nil, false
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = line[loc[2*i]:loc[2*i+1]]
		}
	}

	return groups, true
}

// Scanner maps lines to tokens with an ordered list of matchers.
//
// A Scanner is immutable and safe for concurrent use. Create instances with
// [NewScanner] or [NewYAML].
type Scanner struct {
	fallback MapFunc
	matchers []Matcher
}

// NewScanner creates a [Scanner]. Matchers are tried in the given order. A
// nil fallback produces generic [Line] tokens.
func NewScanner(fallback MapFunc, matchers ...Matcher) *Scanner {
	if fallback == nil {
		fallback = func(m Match) (Token, bool) {
			return NewLine(m.Index, m.Line), true
		}
	}

	return &Scanner{
		fallback: fallback,
		matchers: slices.Clone(matchers),
	}
}

// Scan prepares content for scanning. No line is classified until the
// returned [Scan] is ranged.
func (s *Scanner) Scan(content string) *Scan {
	return &Scan{
		scanner: s,
		content: content,
		lines:   splitLines(content),
	}
}

// token classifies a single line.
func (s *Scanner) token(index int, line string) Token {
	for _, m := range s.matchers {
		groups, ok := m.match(line)
		if !ok {
			continue
		}

		tok, ok := m.Map(Match{Index: index, Line: line, Groups: groups})
		if ok && tok != nil {
			return tok
		}
	}

	tok, ok := s.fallback(Match{Index: index, Line: line, Groups: []string{line}})
	if !ok || tok == nil {
		return NewLine(index, line)
	}

	return tok
}

// Scan is a restartable scan over one piece of content.
type Scan struct {
	scanner *Scanner
	content string
	lines   []string
}

// Content returns the scanned content.
func (s *Scan) Content() string {
	return s.content
}

// Lines returns a copy of the split lines.
func (s *Scan) Lines() []string {
	return slices.Clone(s.lines)
}

// Len returns the number of lines.
func (s *Scan) Len() int {
	return len(s.lines)
}

// All returns a sequence of one token per line, in line order. Each
// iteration starts over from the first line.
func (s *Scan) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for i, line := range s.lines {
			if !yield(s.scanner.token(i, line)) {
				return
			}
		}
	}
}

// Collect classifies every line and returns the tokens.
func (s *Scan) Collect() []Token {
	out := make([]Token, 0, len(s.lines))
	for tok := range s.All() {
		out = append(out, tok)
	}

	return out
}

// splitLines splits content on LF or CRLF. Trailing empty lines are dropped,
// so content ending in a line terminator does not yield a final empty line.
func splitLines(content string) []string {
	lines := lineBreak.Split(content, -1)
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// leadingWidth returns the number of leading spaces in s.
func leadingWidth(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}
