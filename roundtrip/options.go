package roundtrip

import (
	"log/slog"
)

const (
	// DefaultIndent is the default number of spaces per nesting level.
	DefaultIndent = 2
	// DefaultMaxDepth is the default nesting depth limit.
	DefaultMaxDepth = 100
)

// Option configures a [Processor].
type Option func(*Processor)

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) Option {
	return func(p *Processor) {
		p.indent = n
	}
}

// WithMaxDepth sets the nesting depth at which a pass fails.
func WithMaxDepth(n int) Option {
	return func(p *Processor) {
		p.maxDepth = n
	}
}

// WithNewline sets the line separator used to join output lines. The
// default is the platform line separator.
func WithNewline(s string) Option {
	return func(p *Processor) {
		p.newline = s
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}
