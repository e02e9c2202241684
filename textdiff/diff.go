package textdiff

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of change a [Line] represents.
type Op int

const (
	// Equal marks a line present in both versions.
	Equal Op = iota
	// Insert marks a line only present in the new version.
	Insert
	// Delete marks a line only present in the old version.
	Delete
)

// String returns the unified diff prefix of op.
func (op Op) String() string {
	switch op {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a diff, without its line terminator.
type Line struct {
	Text string
	Op   Op
}

// Lines returns the line diff from before to after. CRLF line endings are
// compared as LF.
func Lines(before, after string) []Line {
	before = strings.ReplaceAll(before, "\r\n", "\n")
	after = strings.ReplaceAll(after, "\r\n", "\n")

	dmp := diffpatch.New()
	a, b, index := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var out []Line

	for _, d := range diffs {
		op := Equal

		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffEqual:
		}

		for text := range strings.Lines(d.Text) {
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}

	return out
}

// Changed reports whether before and after differ in any line.
func Changed(before, after string) bool {
	return hasChanges(Lines(before, after))
}

// Renderer writes diffs in unified style.
type Renderer struct {
	insert  *color.Color
	delete  *color.Color
	header  *color.Color
	context int
	color   bool
}

// RendererOpt configures a [Renderer].
type RendererOpt func(*Renderer)

// WithColor enables or disables ANSI colors.
func WithColor(enabled bool) RendererOpt {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// WithContext sets the number of unchanged lines shown around changes. A
// negative value shows every line.
func WithContext(n int) RendererOpt {
	return func(r *Renderer) {
		r.context = n
	}
}

// NewRenderer creates a [Renderer]. By default it shows three lines of
// context and no colors.
func NewRenderer(opts ...RendererOpt) *Renderer {
	r := &Renderer{
		context: 3,
		insert:  color.New(color.FgGreen),
		delete:  color.New(color.FgRed),
		header:  color.New(color.Bold),
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, c := range []*color.Color{r.insert, r.delete, r.header} {
		if r.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// Render writes the diff from before to after to w, labeled with the given
// names. Nothing is written when the texts are equal.
func (r *Renderer) Render(w io.Writer, from, to, before, after string) error {
	lines := Lines(before, after)
	if !hasChanges(lines) {
		return nil
	}

	var sb strings.Builder

	sb.WriteString(r.header.Sprint("--- " + from))
	sb.WriteString("\n")
	sb.WriteString(r.header.Sprint("+++ " + to))
	sb.WriteString("\n")

	show := r.visible(lines)
	skipped := false

	for i, l := range lines {
		if !show[i] {
			if !skipped {
				sb.WriteString("...\n")

				skipped = true
			}

			continue
		}

		skipped = false

		text := l.Op.String() + " " + l.Text

		switch l.Op {
		case Insert:
			text = r.insert.Sprint(text)
		case Delete:
			text = r.delete.Sprint(text)
		case Equal:
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// visible marks the lines within the context window of a change.
func (r *Renderer) visible(lines []Line) []bool {
	show := make([]bool, len(lines))

	for i, l := range lines {
		if r.context < 0 || l.Op != Equal {
			show[i] = true

			continue
		}

		lo := max(0, i-r.context)
		hi := min(len(lines)-1, i+r.context)

		for j := lo; j <= hi; j++ {
			if lines[j].Op != Equal {
				show[i] = true

				break
			}
		}
	}

	return show
}

func hasChanges(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}

	return false
}

// ShouldColor reports whether output written to f should be colored: f must
// be a terminal and the NO_COLOR environment variable must be unset.
func ShouldColor(f *os.File) bool {
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
