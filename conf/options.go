package conf

import (
	"log/slog"

	"go.jacobcolvin.com/yamldoc/roundtrip"
	"go.jacobcolvin.com/yamldoc/yamlstore"
)

type settings struct {
	logger   *slog.Logger
	id       string
	newline  string
	sep      rune
	indent   int
	maxDepth int
}

func defaultSettings() settings {
	return settings{
		sep:      yamlstore.DefaultSeparator,
		indent:   yamlstore.DefaultIndent,
		maxDepth: roundtrip.DefaultMaxDepth,
	}
}

// Option configures a [File].
type Option func(*settings)

// WithID sets the identifier of the file. It defaults to the location.
func WithID(id string) Option {
	return func(s *settings) {
		s.id = id
	}
}

// WithSeparator sets the character used to join path segments when talking
// to the value store.
func WithSeparator(sep rune) Option {
	return func(s *settings) {
		s.sep = sep
	}
}

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) Option {
	return func(s *settings) {
		s.indent = n
	}
}

// WithMaxDepth sets the nesting depth at which load and save fail.
func WithMaxDepth(n int) Option {
	return func(s *settings) {
		s.maxDepth = n
	}
}

// WithNewline sets the line separator of saved text. It defaults to the
// platform line separator.
func WithNewline(nl string) Option {
	return func(s *settings) {
		s.newline = nl
	}
}

// WithLogger sets the logger. It defaults to [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}
