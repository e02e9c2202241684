package keypath

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// DefaultSeparator is the separator used by [Path.String].
const DefaultSeparator = '.'

// keySeparator joins length-prefixed segments in [Path.Key].
const keySeparator = "\x00"

var (
	// ErrOutOfRange indicates a segment index outside the path.
	ErrOutOfRange = errors.New("index out of range")
	// ErrInvalidRange indicates a sub-range whose start is after its end.
	ErrInvalidRange = errors.New("invalid range")
)

// Root is the empty path.
var Root = Path{}

// Path is an immutable sequence of non-blank segments.
//
// The zero value is the empty path. Create instances with [New], [Parse], or
// by extending an existing path with [Path.Add] and [Path.Append].
type Path struct {
	segments []string
}

// ValidSegment reports whether s may be used as a path segment.
func ValidSegment(s string) bool {
	return strings.TrimSpace(s) != ""
}

// New returns a path made of the valid segments in order. Blank segments are
// dropped.
func New(segments ...string) Path {
	var out []string

	for _, s := range segments {
		if ValidSegment(s) {
			out = append(out, s)
		}
	}

	return Path{segments: out}
}

// Parse splits s on sep. Leading, trailing, and repeated separators as well
// as blank runs never produce segments, so parsing a string made only of
// separators and whitespace yields the empty path.
func Parse(s string, sep rune) Path {
	if s == "" {
		return Root
	}

	return New(strings.Split(s, string(sep))...)
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether p is the root path.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Join joins all segments with sep. It is the inverse of [Parse] for paths
// whose segments do not contain sep.
func (p Path) Join(sep rune) string {
	return strings.Join(p.segments, string(sep))
}

// String returns the segments joined with [DefaultSeparator].
func (p Path) String() string {
	return p.Join(DefaultSeparator)
}

// Key returns a canonical string for p, suitable as a map key. Two paths have
// the same key exactly when they are [Path.Equal].
func (p Path) Key() string {
	var sb strings.Builder

	for i, s := range p.segments {
		if i > 0 {
			sb.WriteString(keySeparator)
		}

		fmt.Fprintf(&sb, "%d:%s", len(s), s)
	}

	return sb.String()
}

// Equal reports whether p and other have the same segments in the same order.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// Segments returns a copy of the segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// All iterates over the segments with their index.
func (p Path) All() iter.Seq2[int, string] {
	return slices.All(p.segments)
}

// Segment returns the segment at index i.
func (p Path) Segment(i int) (string, error) {
	if i < 0 || i >= len(p.segments) {
		return "", fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, len(p.segments))
	}

	return p.segments[i], nil
}

// First returns the first segment.
func (p Path) First() (string, error) {
	return p.Segment(0)
}

// Last returns the last segment.
func (p Path) Last() (string, error) {
	return p.Segment(len(p.segments) - 1)
}

// Add returns p followed by other. If either operand is empty the other one
// is returned as is.
func (p Path) Add(other Path) Path {
	if other.IsEmpty() {
		return p
	}

	if p.IsEmpty() {
		return other
	}

	return Path{segments: slices.Concat(p.segments, other.segments)}
}

// Append returns p followed by the valid segments. Blank segments are
// dropped; if none remain p is returned as is.
func (p Path) Append(segments ...string) Path {
	return p.Add(New(segments...))
}

// ParseAdd parses s with sep and appends the result to p.
func (p Path) ParseAdd(s string, sep rune) Path {
	return p.Add(Parse(s, sep))
}

// Sub returns the segments in [start, end).
func (p Path) Sub(start, end int) (Path, error) {
	n := len(p.segments)

	if start < 0 || start > n {
		return Root, fmt.Errorf("%w: start %d, length %d", ErrOutOfRange, start, n)
	}

	if end < 0 || end > n {
		return Root, fmt.Errorf("%w: end %d, length %d", ErrOutOfRange, end, n)
	}

	if start > end {
		return Root, fmt.Errorf("%w: start %d > end %d", ErrInvalidRange, start, end)
	}

	if start == end {
		return Root, nil
	}

	return Path{segments: slices.Clone(p.segments[start:end])}, nil
}

// Tail returns the segments from start to the end of p.
func (p Path) Tail(start int) (Path, error) {
	return p.Sub(start, len(p.segments))
}

// With returns a copy of p where the segment at index i is replaced. A blank
// segment removes index i instead.
func (p Path) With(i int, segment string) (Path, error) {
	if i < 0 || i >= len(p.segments) {
		return Root, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, len(p.segments))
	}

	if !ValidSegment(segment) {
		return Path{segments: slices.Delete(slices.Clone(p.segments), i, i+1)}, nil
	}

	out := slices.Clone(p.segments)
	out[i] = segment

	return Path{segments: out}, nil
}

// HasPrefix reports whether the leading segments of p equal prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.Len() > p.Len() {
		return false
	}

	return slices.Equal(p.segments[:prefix.Len()], prefix.segments)
}
