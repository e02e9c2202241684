package conf

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/yamldoc/roundtrip"
	"go.jacobcolvin.com/yamldoc/yamlstore"
)

// Flags holds CLI flag names for file configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Separator string
	Indent    string
	MaxDepth  string
	Newline   string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for file configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Open] to create and load a [File].
type Config struct {
	Flags     Flags
	Separator string
	Newline   string
	Indent    int
	MaxDepth  int
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Separator: "separator",
		Indent:    "indent",
		MaxDepth:  "max-depth",
		Newline:   "newline",
	}

	return f.NewConfig()
}

// RegisterFlags adds file configuration flags to the given
// [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Separator, c.Flags.Separator, string(yamlstore.DefaultSeparator),
		"path separator character")
	flags.IntVar(&c.Indent, c.Flags.Indent, yamlstore.DefaultIndent,
		"spaces per nesting level")
	flags.IntVar(&c.MaxDepth, c.Flags.MaxDepth, roundtrip.DefaultMaxDepth,
		"maximum nesting depth")
	flags.StringVar(&c.Newline, c.Flags.Newline, "",
		"line separator of written files, one of: lf, crlf (default: platform)")
}

// RegisterCompletions registers shell completions for file configuration
// flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Separator,
		cobra.FixedCompletions([]string{".", "/", ":"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Separator, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Newline,
		cobra.FixedCompletions([]string{"lf", "crlf"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Newline, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Indent, c.Flags.MaxDepth} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// Options converts c into [Option] values.
func (c *Config) Options() ([]Option, error) {
	if utf8.RuneCountInString(c.Separator) != 1 {
		return nil, fmt.Errorf("%w: separator must be one character, got %q", ErrInvalidOption, c.Separator)
	}

	sep, _ := utf8.DecodeRuneInString(c.Separator)

	opts := []Option{
		WithSeparator(sep),
		WithIndent(c.Indent),
		WithMaxDepth(c.MaxDepth),
	}

	switch c.Newline {
	case "":
	case "lf":
		opts = append(opts, WithNewline("\n"))
	case "crlf":
		opts = append(opts, WithNewline("\r\n"))
	default:
		return nil, fmt.Errorf("%w: newline %q", ErrInvalidOption, c.Newline)
	}

	return opts, nil
}

// Open creates the [File] at location with the options in c and loads it.
func (c *Config) Open(location string, logger *slog.Logger) (*File, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	f, err := New(location, append(opts, WithLogger(logger))...)
	if err != nil {
		return nil, err
	}

	err = f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}
