package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// FormatAuto selects [FormatText] for terminals and [FormatLogfmt]
// otherwise. It is only understood by [Config].
const FormatAuto = "auto"

// Flags holds CLI flag names for log configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Level  string
	Format string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for log configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewLogger] to create a logger.
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a new [Config] with zero-value fields.
func NewConfig() *Config {
	f := Flags{
		Level:  "log-level",
		Format: "log-format",
	}

	return f.NewConfig()
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, string(LevelWarn),
		fmt.Sprintf("log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, FormatAuto,
		fmt.Sprintf("log format, one of: %s", formatChoices()))
}

// RegisterCompletions registers shell completions for log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(formatChoices(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// NewHandler creates a [Handler] that writes to w, using the level and
// format strings stored in c. An empty format or [FormatAuto] is resolved
// against w.
func (c *Config) NewHandler(w io.Writer) (Handler, error) {
	format := c.Format
	if format == "" || format == FormatAuto {
		format = string(detectFormat(w))
	}

	return NewHandlerFromStrings(w, c.Level, format)
}

// NewLogger is like [Config.NewHandler] but returns a [*slog.Logger].
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	h, err := c.NewHandler(w)
	if err != nil {
		return nil, err
	}

	return slog.New(h), nil
}

func detectFormat(w io.Writer) Format {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatText
	}

	return FormatLogfmt
}

func formatChoices() []string {
	return append(slices.Clone(GetAllFormatStrings()), FormatAuto)
}
