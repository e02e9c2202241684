package docstore

import (
	"iter"
	"slices"
	"strings"

	"go.jacobcolvin.com/yamldoc/keypath"
)

type entry struct {
	path  keypath.Path
	lines []string
}

// Store maps paths to documentation lines.
//
// A Store is not safe for concurrent use. Create instances with [New].
type Store struct {
	entries map[string]entry
}

// New creates an empty [Store].
func New() *Store {
	return &Store{entries: map[string]entry{}}
}

// Get returns a copy of the documentation for p, or nil.
func (s *Store) Get(p keypath.Path) []string {
	e, ok := s.entries[p.Key()]
	if !ok {
		return nil
	}

	return slices.Clone(e.lines)
}

// Docs is an alias of [Store.Get].
func (s *Store) Docs(p keypath.Path) []string {
	return s.Get(p)
}

// Has reports whether p has documentation.
func (s *Store) Has(p keypath.Path) bool {
	_, ok := s.entries[p.Key()]

	return ok
}

// Set replaces the documentation for p. Lines containing line breaks are
// split, and lines holding only whitespace are dropped, since neither
// survives being written out as comments. Calling Set without lines, or
// with only blank lines, removes the entry.
func (s *Store) Set(p keypath.Path, lines ...string) {
	lines = Normalize(lines)
	if len(lines) == 0 {
		delete(s.entries, p.Key())

		return
	}

	s.entries[p.Key()] = entry{path: p, lines: lines}
}

// SetIfAbsent stores lines for p only if p has no documentation yet. It
// reports whether the lines were stored.
func (s *Store) SetIfAbsent(p keypath.Path, lines ...string) bool {
	lines = Normalize(lines)
	if len(lines) == 0 || s.Has(p) {
		return false
	}

	s.entries[p.Key()] = entry{path: p, lines: lines}

	return true
}

// Normalize returns a new slice with every line break split out and blank
// lines removed. It returns nil when no line remains.
func Normalize(lines []string) []string {
	var out []string
	for _, line := range lines {
		for part := range strings.SplitSeq(strings.ReplaceAll(line, "\r\n", "\n"), "\n") {
			if strings.TrimSpace(part) == "" {
				continue
			}

			out = append(out, part)
		}
	}

	return out
}

// Remove deletes the documentation for p and reports whether there was any.
func (s *Store) Remove(p keypath.Path) bool {
	k := p.Key()
	_, ok := s.entries[k]
	delete(s.entries, k)

	return ok
}

// RemovePrefix deletes the documentation for p and every path below it. It
// returns the number of removed entries.
func (s *Store) RemovePrefix(p keypath.Path) int {
	n := 0

	for k, e := range s.entries {
		if e.path.HasPrefix(p) {
			delete(s.entries, k)
			n++
		}
	}

	return n
}

// Len returns the number of documented paths.
func (s *Store) Len() int {
	return len(s.entries)
}

// Paths returns every documented path, sorted by segments.
func (s *Store) Paths() []keypath.Path {
	out := make([]keypath.Path, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.path)
	}

	slices.SortFunc(out, func(a, b keypath.Path) int {
		return slices.Compare(a.Segments(), b.Segments())
	})

	return out
}

// All returns a sequence of documented paths and their lines, sorted by
// path.
func (s *Store) All() iter.Seq2[keypath.Path, []string] {
	return func(yield func(keypath.Path, []string) bool) {
		for _, p := range s.Paths() {
			if !yield(p, s.Get(p)) {
				return
			}
		}
	}
}

// Clear removes all documentation.
func (s *Store) Clear() {
	clear(s.entries)
}

// Clone returns an independent copy of s.
func (s *Store) Clone() *Store {
	out := New()
	for k, e := range s.entries {
		out.entries[k] = entry{path: e.path, lines: slices.Clone(e.lines)}
	}

	return out
}

// Equal reports whether s and other hold the same documentation.
func (s *Store) Equal(other *Store) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}

	for k, e := range s.entries {
		o, ok := other.entries[k]
		if !ok || !slices.Equal(e.lines, o.lines) {
			return false
		}
	}

	return true
}

// String renders the store for debugging, one "path: line | line" entry per
// line.
func (s *Store) String() string {
	var sb strings.Builder

	for p, lines := range s.All() {
		sb.WriteString(p.String())
		sb.WriteString(": ")
		sb.WriteString(strings.Join(lines, " | "))
		sb.WriteByte('\n')
	}

	return sb.String()
}
