package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode"

	"go.jacobcolvin.com/yamldoc/docstore"
	"go.jacobcolvin.com/yamldoc/keypath"
	"go.jacobcolvin.com/yamldoc/roundtrip"
	"go.jacobcolvin.com/yamldoc/yamlstore"
)

var (
	// ErrLoad indicates a failure to read or parse a file.
	ErrLoad = errors.New("load config")
	// ErrSave indicates a failure to render or write a file.
	ErrSave = errors.New("save config")
	// ErrNotSection indicates a path that does not address a section.
	ErrNotSection = errors.New("not a section")
	// ErrNotFound indicates a missing value or file.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOption indicates an invalid [Option] or [Config] value.
	ErrInvalidOption = errors.New("invalid option")
)

// File is a documented YAML configuration file and the root of its section
// tree.
//
// Load and save are serialized by an internal lock. Reading and writing
// values is not synchronized; callers that share a File across goroutines
// must coordinate those calls themselves.
//
// Create instances with [New].
type File struct {
	prefixer

	root     *Section
	store    *yamlstore.Store
	docs     *docstore.Store
	proc     *roundtrip.Processor
	logger   *slog.Logger
	sections map[string]*Section
	id       string
	location string
	header   []string
	mu       sync.Mutex
	sep      rune
}

// New creates an empty [File] backed by location. Nothing is read until
// [File.Load] is called. An empty location makes a memory-only file that
// can still use [File.LoadString] and [File.SaveString].
func New(location string, opts ...Option) (*File, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	if s.sep == 0 || unicode.IsSpace(s.sep) {
		return nil, fmt.Errorf("%w: separator %q", ErrInvalidOption, s.sep)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.id == "" {
		s.id = location
	}

	procOpts := []roundtrip.Option{
		roundtrip.WithIndent(s.indent),
		roundtrip.WithMaxDepth(s.maxDepth),
		roundtrip.WithLogger(s.logger),
	}
	if s.newline != "" {
		procOpts = append(procOpts, roundtrip.WithNewline(s.newline))
	}

	proc, err := roundtrip.New(procOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	f := &File{
		store: yamlstore.New(
			yamlstore.WithSeparator(s.sep),
			yamlstore.WithIndent(s.indent),
		),
		docs:     docstore.New(),
		proc:     proc,
		logger:   s.logger.With(slog.String("config", s.id)),
		sections: map[string]*Section{},
		id:       s.id,
		location: location,
		sep:      s.sep,
	}
	f.prefixer = prefixer{resolve: func() (*File, error) { return f, nil }}
	f.root = newSection(f, nil, keypath.Root)

	return f, nil
}

// Path returns the empty path.
func (f *File) Path() keypath.Path { return keypath.Root }

// ID returns the identifier of f.
func (f *File) ID() string { return f.id }

// Location returns the file location.
func (f *File) Location() string { return f.location }

// Separator returns the path separator used by [File.ParsePath].
func (f *File) Separator() rune { return f.sep }

// ParsePath parses s with the file's separator.
func (f *File) ParsePath(s string) keypath.Path {
	return keypath.Parse(s, f.sep)
}

// Header returns a copy of the header lines.
func (f *File) Header() []string {
	return slices.Clone(f.header)
}

// SetHeader replaces the header. Lines are normalized as by
// [docstore.Normalize]. Calling it without lines removes the header.
func (f *File) SetHeader(lines ...string) {
	f.header = docstore.Normalize(lines)
}

// DocPaths returns every documented path, sorted.
func (f *File) DocPaths() []keypath.Path {
	return f.docs.Paths()
}

// Values returns all values as plain Go maps and slices.
func (f *File) Values() map[string]any {
	return f.store.Values()
}

// Load reads the file and merges it into f. A missing file loads as empty.
//
// Documentation from the file is only recorded for paths that have none, so
// reloading never overwrites documentation set in code. The header is
// replaced when the file has one. If the file cannot be parsed, f is left
// unchanged.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.location == "" {
		return fmt.Errorf("%w: no location", ErrLoad)
	}

	b, err := os.ReadFile(f.location)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Debug("config file does not exist", slog.String("path", f.location))

		b = nil
	} else if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return f.load(string(b))
}

// LoadString merges text into f, like [File.Load] does with file contents.
func (f *File) LoadString(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.load(text)
}

func (f *File) load(text string) error {
	h, err := f.proc.Load(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	err = f.store.Unmarshal(h.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	added := 0

	for _, e := range h.Docs {
		if f.docs.SetIfAbsent(e.Path, e.Lines...) {
			added++
		}
	}

	if len(h.Header) > 0 {
		f.header = h.Header
	}

	f.logger.Debug("loaded config",
		slog.Int("keys", f.store.Len()),
		slog.Int("docs", added),
	)

	return nil
}

// Save writes f to its location, creating missing parent directories.
func (f *File) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.location == "" {
		return fmt.Errorf("%w: no location", ErrSave)
	}

	text, err := f.render()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(f.location), 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	err = os.WriteFile(f.location, []byte(text), 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	f.logger.Debug("saved config", slog.String("path", f.location))

	return nil
}

// SaveString renders f as documented text.
func (f *File) SaveString() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.render()
}

func (f *File) render() (string, error) {
	body, err := f.store.Marshal()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSave, err)
	}

	doc, err := f.proc.Save(f.docs, body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSave, err)
	}

	nl := f.proc.Newline()

	var sb strings.Builder

	for _, line := range f.header {
		sb.WriteString(f.proc.Comment(0, line))
		sb.WriteString(nl)
	}

	if doc != "" {
		if len(f.header) > 0 {
			sb.WriteString(nl)

			doc = strings.TrimPrefix(doc, nl)
		}

		sb.WriteString(doc)
		sb.WriteString(nl)
	}

	return sb.String(), nil
}

// key converts an absolute path to a value store path.
func (f *File) key(abs keypath.Path) string {
	return abs.Join(f.sep)
}

// section returns the cached section at abs, creating it if the value store
// has a section there. Cached sections the store no longer has are dropped.
func (f *File) section(abs keypath.Path) (*Section, error) {
	if abs.IsEmpty() {
		return f.root, nil
	}

	k := abs.Key()

	if !f.store.IsSection(f.key(abs)) {
		if _, ok := f.sections[k]; ok {
			f.logger.Debug("dropping stale section", slog.String("section", abs.String()))
			delete(f.sections, k)
		}

		return nil, fmt.Errorf("%w: %s", ErrNotSection, abs)
	}

	if s, ok := f.sections[k]; ok {
		return s, nil
	}

	parentPath, err := abs.Sub(0, abs.Len()-1)
	if err != nil {
		return nil, err
	}

	parent, err := f.section(parentPath)
	if err != nil {
		return nil, err
	}

	s := newSection(f, parent, abs)
	f.sections[k] = s

	return s, nil
}

func (f *File) get(abs keypath.Path) (any, bool) {
	return f.store.Get(f.key(abs))
}

func (f *File) set(abs keypath.Path, v any, docs []string) error {
	if src, ok := v.(*Section); ok {
		return f.copySection(abs, src, docs)
	}

	err := f.store.Set(f.key(abs), v)
	if err != nil {
		return fmt.Errorf("set %s: %w", abs, err)
	}

	if v == nil {
		f.docs.RemovePrefix(abs)

		return nil
	}

	if len(docs) > 0 {
		f.docs.Set(abs, docs...)
	}

	return nil
}

// copySection copies the values and documentation below src to abs.
func (f *File) copySection(abs keypath.Path, src *Section, docs []string) error {
	v, ok := src.root.get(src.path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotSection, src.path)
	}

	type entry struct {
		path  keypath.Path
		lines []string
	}

	var copied []entry

	for p, lines := range src.root.docs.All() {
		if !p.HasPrefix(src.path) {
			continue
		}

		rel, err := p.Tail(src.path.Len())
		if err != nil {
			return err
		}

		copied = append(copied, entry{path: abs.Add(rel), lines: lines})
	}

	err := f.store.Set(f.key(abs), v)
	if err != nil {
		return fmt.Errorf("set %s: %w", abs, err)
	}

	for _, e := range copied {
		f.docs.Set(e.path, e.lines...)
	}

	if len(docs) > 0 {
		f.docs.Set(abs, docs...)
	}

	return nil
}

func (f *File) keys(abs keypath.Path, deep bool) ([]keypath.Path, error) {
	ks, err := f.store.Keys(f.key(abs), deep)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotSection, abs)
	}

	out := make([]keypath.Path, 0, len(ks))
	for _, k := range ks {
		out = append(out, keypath.Parse(k, f.sep))
	}

	return out, nil
}
