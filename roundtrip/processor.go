package roundtrip

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.jacobcolvin.com/yamldoc/keypath"
	"go.jacobcolvin.com/yamldoc/linescan"
)

var (
	// ErrDepthExceeded indicates a line nested at or beyond the depth limit.
	ErrDepthExceeded = errors.New("nesting depth exceeded")
	// ErrInvalidOption indicates an invalid [Option] value.
	ErrInvalidOption = errors.New("invalid option")
)

// Lookup provides the documentation to inject on save.
// [*docstore.Store] implements it.
type Lookup interface {
	Docs(p keypath.Path) []string
}

// Entry is the documentation harvested for one path.
type Entry struct {
	Path  keypath.Path
	Lines []string
}

// Harvest is the result of [Processor.Load].
type Harvest struct {
	// Body is the loaded text with key documentation removed. Header
	// comments are kept.
	Body string
	// Header holds the leading comment lines, or nil if there were none.
	Header []string
	// Docs holds one entry per documented key in document order. When the
	// same path is documented twice, the first block wins.
	Docs []Entry
}

// Processor converts between documented text and a value store's plain
// serialization.
//
// A Processor is immutable and safe for concurrent use. Create instances
// with [New].
type Processor struct {
	scanner  *linescan.Scanner
	logger   *slog.Logger
	newline  string
	indent   int
	maxDepth int
}

// New creates a [Processor].
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		indent:   DefaultIndent,
		maxDepth: DefaultMaxDepth,
		newline:  platformNewline,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.maxDepth < 1 {
		return nil, fmt.Errorf("%w: max depth %d", ErrInvalidOption, p.maxDepth)
	}

	if p.newline == "" {
		return nil, fmt.Errorf("%w: empty newline", ErrInvalidOption)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	sc, err := linescan.NewYAML(p.indent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	p.scanner = sc

	return p, nil
}

// Indent returns the number of spaces per nesting level.
func (p *Processor) Indent() int { return p.indent }

// MaxDepth returns the nesting depth limit.
func (p *Processor) MaxDepth() int { return p.maxDepth }

// Newline returns the output line separator.
func (p *Processor) Newline() string { return p.newline }

// Comment formats line as a comment at the given depth.
func (p *Processor) Comment(depth int, line string) string {
	return strings.Repeat(" ", depth*p.indent) + "# " + line
}

// Save injects documentation into text, which should be the value store's
// own serialization. Each documented key gets its comment block on the lines
// right above it, indented to the key's depth. All other lines are copied.
//
// If the first line of the result would be a comment block, a blank line is
// emitted first so that [Processor.Load] does not read it as a header.
func (p *Processor) Save(docs Lookup, text string) (string, error) {
	scan := p.scanner.Scan(text)
	seg := newSegments(p.maxDepth)
	out := make([]string, 0, scan.Len())
	injected := 0

	for tok := range scan.All() {
		m, ok := tok.(*linescan.Mapping)
		if !ok {
			out = append(out, tok.Text())

			continue
		}

		path, err := p.put(seg, m)
		if err != nil {
			return "", err
		}

		lines := docs.Docs(path)
		if len(lines) > 0 {
			if len(out) == 0 {
				out = append(out, "")
			}

			for _, line := range lines {
				out = append(out, p.Comment(m.Depth, line))
			}

			injected++
		}

		out = append(out, m.Text())
	}

	p.logger.Debug("injected documentation",
		slog.Int("keys", injected),
		slog.Int("lines", len(out)),
	)

	return strings.Join(out, p.newline), nil
}

// Load harvests documentation from text.
//
// Comment lines are collected until the next mapping line and recorded as
// that key's documentation. Comments at the very top of the text, ended by
// the first mapping line or the first line that is not a comment, form the
// header instead; the header stays in [Harvest.Body].
func (p *Processor) Load(text string) (*Harvest, error) {
	scan := p.scanner.Scan(text)
	seg := newSegments(p.maxDepth)
	out := make([]string, 0, scan.Len())
	seen := map[string]bool{}

	var (
		h       Harvest
		pending []string
	)

	inHeader := true
	endHeader := func() {
		inHeader = false
		h.Header = pending

		for _, line := range pending {
			out = append(out, p.Comment(0, line))
		}

		pending = nil
	}

	for tok := range scan.All() {
		switch t := tok.(type) {
		case *linescan.Comment:
			err := seg.check(t.Depth)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", t.Index()+1, err)
			}

			pending = append(pending, t.Content)

		case *linescan.Mapping:
			if inHeader {
				endHeader()
			}

			path, err := p.put(seg, t)
			if err != nil {
				return nil, err
			}

			if len(pending) > 0 && !seen[path.Key()] {
				seen[path.Key()] = true
				h.Docs = append(h.Docs, Entry{Path: path, Lines: pending})
			}

			pending = nil

			out = append(out, t.Text())

		default:
			if inHeader {
				endHeader()
			}

			out = append(out, tok.Text())
		}
	}

	if inHeader {
		endHeader()
	}

	if len(pending) > 0 {
		p.logger.Debug("dropped trailing comments", slog.Int("lines", len(pending)))
	}

	h.Body = strings.Join(out, p.newline)

	p.logger.Debug("harvested documentation",
		slog.Int("keys", len(h.Docs)),
		slog.Int("header", len(h.Header)),
	)

	return &h, nil
}

// Paths returns the path of every mapping line in text, in line order.
func (p *Processor) Paths(text string) ([]keypath.Path, error) {
	seg := newSegments(p.maxDepth)

	var out []keypath.Path

	for tok := range p.scanner.Scan(text).All() {
		m, ok := tok.(*linescan.Mapping)
		if !ok {
			continue
		}

		path, err := p.put(seg, m)
		if err != nil {
			return nil, err
		}

		out = append(out, path)
	}

	return out, nil
}

// put records m in seg and returns its path.
func (p *Processor) put(seg *segments, m *linescan.Mapping) (keypath.Path, error) {
	skips := seg.skips(m.Depth)

	path, err := seg.put(m.Depth, m.Key)
	if err != nil {
		return keypath.Root, fmt.Errorf("line %d: %w", m.Index()+1, err)
	}

	if skips {
		p.logger.Debug("indentation skips a level",
			slog.Int("line", m.Index()+1),
			slog.Int("depth", m.Depth),
			slog.String("path", path.String()),
		)
	}

	return path, nil
}
