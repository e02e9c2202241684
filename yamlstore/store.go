package yamlstore

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/yamldoc/keypath"
)

const (
	// DefaultSeparator is the default path separator.
	DefaultSeparator = '.'
	// DefaultIndent is the default number of spaces per nesting level.
	DefaultIndent = 2
)

var (
	// ErrInvalidYAML indicates text that could not be parsed as a YAML
	// mapping.
	ErrInvalidYAML = errors.New("invalid yaml")
	// ErrInvalidPath indicates a path that cannot hold the given value.
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotSection indicates a path that does not address a section.
	ErrNotSection = errors.New("not a section")
)

// Option configures a [Store].
type Option func(*Store)

// WithSeparator sets the path separator.
func WithSeparator(sep rune) Option {
	return func(s *Store) {
		s.sep = sep
	}
}

// WithIndent sets the number of spaces per nesting level used by
// [Store.Marshal].
func WithIndent(n int) Option {
	return func(s *Store) {
		s.indent = n
	}
}

// Store is an ordered YAML mapping.
//
// A Store is not safe for concurrent use. Create instances with [New].
type Store struct {
	root   yaml.MapSlice
	sep    rune
	indent int
}

// New creates an empty [Store].
func New(opts ...Option) *Store {
	s := &Store{
		sep:    DefaultSeparator,
		indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Separator returns the path separator.
func (s *Store) Separator() rune { return s.sep }

// Indent returns the number of spaces per nesting level.
func (s *Store) Indent() int { return s.indent }

func (s *Store) split(path string) []string {
	return keypath.Parse(path, s.sep).Segments()
}

// Get returns the value at path. Sections are returned as independent
// [yaml.MapSlice] copies. The empty path addresses the root.
func (s *Store) Get(path string) (any, bool) {
	v, ok := lookup(s.root, s.split(path))
	if !ok {
		return nil, false
	}

	return clone(v), true
}

// Contains reports whether path holds a value.
func (s *Store) Contains(path string) bool {
	_, ok := lookup(s.root, s.split(path))

	return ok
}

// IsSection reports whether path holds a section.
func (s *Store) IsSection(path string) bool {
	v, ok := lookup(s.root, s.split(path))
	if !ok {
		return false
	}

	_, ok = v.(yaml.MapSlice)

	return ok
}

// Set stores v at path, creating missing sections on the way. Scalars in
// the way are replaced by sections. A nil value deletes path. Maps are
// stored as sections with their keys sorted.
//
// Setting the root requires a mapping value.
func (s *Store) Set(path string, v any) error {
	segs := s.split(path)
	v = normalize(v)

	if len(segs) == 0 {
		switch root := v.(type) {
		case nil:
			s.root = nil
		case yaml.MapSlice:
			s.root = root
		default:
			return fmt.Errorf("%w: root must be a mapping, got %T", ErrInvalidPath, v)
		}

		return nil
	}

	s.root = set(s.root, segs, v)

	return nil
}

// Delete removes path and reports whether it existed.
func (s *Store) Delete(path string) bool {
	if !s.Contains(path) {
		return false
	}

	// Deleting never fails.
	_ = s.Set(path, nil)

	return true
}

// Keys returns the keys of the section at path, in document order. With
// deep set, keys of nested sections are included as relative paths right
// after their parent.
func (s *Store) Keys(path string, deep bool) ([]string, error) {
	v, ok := lookup(s.root, s.split(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotSection, path)
	}

	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotSection, path)
	}

	var out []string

	s.collectKeys(ms, "", deep, &out)

	return out, nil
}

func (s *Store) collectKeys(ms yaml.MapSlice, prefix string, deep bool, out *[]string) {
	for _, item := range ms {
		k := prefix + keyString(item.Key)
		*out = append(*out, k)

		if !deep {
			continue
		}

		if child, ok := item.Value.(yaml.MapSlice); ok {
			s.collectKeys(child, k+string(s.sep), deep, out)
		}
	}
}

// Snapshot returns an independent copy of the whole tree.
func (s *Store) Snapshot() yaml.MapSlice {
	out, _ := clone(s.root).(yaml.MapSlice)

	return out
}

// Values returns the tree as plain Go maps and slices, suitable for JSON
// encoding and expression environments.
func (s *Store) Values() map[string]any {
	out, _ := Plain(s.root).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}

	return out
}

// Len returns the number of top-level keys.
func (s *Store) Len() int {
	return len(s.root)
}

// Marshal serializes the tree. An empty tree serializes to the empty string.
// The output has no trailing newline.
func (s *Store) Marshal() (string, error) {
	if len(s.root) == 0 {
		return "", nil
	}

	b, err := yaml.MarshalWithOptions(s.root,
		yaml.Indent(s.indent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}

	return strings.TrimRight(string(b), "\n"), nil
}

// Unmarshal replaces the tree with the mapping parsed from text. Text
// without any content yields an empty tree. On error the tree is left
// unchanged.
func (s *Store) Unmarshal(text string) error {
	if !hasContent(text) {
		s.root = nil

		return nil
	}

	var v any

	err := yaml.UnmarshalWithOptions([]byte(text), &v, yaml.UseOrderedMap())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	switch root := v.(type) {
	case nil:
		s.root = nil
	case yaml.MapSlice:
		s.root = root
	default:
		return fmt.Errorf("%w: document root is %T, not a mapping", ErrInvalidYAML, v)
	}

	return nil
}

// Clone returns an independent copy of s with the same options.
func (s *Store) Clone() *Store {
	return &Store{
		root:   s.Snapshot(),
		sep:    s.sep,
		indent: s.indent,
	}
}

// hasContent reports whether text has a line that is neither blank nor a
// comment.
func hasContent(text string) bool {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return true
		}
	}

	return false
}

func lookup(ms yaml.MapSlice, segs []string) (any, bool) {
	if len(segs) == 0 {
		return ms, true
	}

	i := index(ms, segs[0])
	if i < 0 {
		return nil, false
	}

	if len(segs) == 1 {
		return ms[i].Value, true
	}

	child, ok := ms[i].Value.(yaml.MapSlice)
	if !ok {
		return nil, false
	}

	return lookup(child, segs[1:])
}

func set(ms yaml.MapSlice, segs []string, v any) yaml.MapSlice {
	i := index(ms, segs[0])

	if len(segs) == 1 {
		switch {
		case v == nil && i >= 0:
			return slices.Delete(ms, i, i+1)
		case v == nil:
			return ms
		case i >= 0:
			ms[i].Value = v

			return ms
		}

		return append(ms, yaml.MapItem{Key: segs[0], Value: v})
	}

	var child yaml.MapSlice

	if i >= 0 {
		child, _ = ms[i].Value.(yaml.MapSlice)
	}

	if v == nil && child == nil {
		return ms
	}

	child = set(child, segs[1:], v)

	if i >= 0 {
		ms[i].Value = child

		return ms
	}

	return append(ms, yaml.MapItem{Key: segs[0], Value: child})
}

func index(ms yaml.MapSlice, key string) int {
	return slices.IndexFunc(ms, func(item yaml.MapItem) bool {
		return keyString(item.Key) == key
	})
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}

	return fmt.Sprint(k)
}
