package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "charm.land/log/v2"
)

// Handler is an alias of [slog.Handler].
type Handler = slog.Handler

// Level represents a log severity.
type Level string

const (
	// LevelError only logs errors.
	LevelError Level = "error"
	// LevelWarn logs warnings and errors.
	LevelWarn Level = "warn"
	// LevelInfo logs informational messages and above.
	LevelInfo Level = "info"
	// LevelDebug logs everything.
	LevelDebug Level = "debug"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs human-readable, styled logs.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

var (
	allLevels  = []Level{LevelError, LevelWarn, LevelInfo, LevelDebug}
	allFormats = []Format{FormatJSON, FormatLogfmt, FormatText}
)

// NewHandlerFromStrings creates a [Handler] from level and format strings.
func NewHandlerFromStrings(w io.Writer, level, format string) (Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	logFmt, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, logFmt), nil
}

// NewHandler creates a [Handler] with the specified level and format.
// Unknown formats fall back to [FormatText].
func NewHandler(w io.Writer, level Level, format Format) Handler {
	lvl := level.slogLevel()

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
		})

	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
		})
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(lvl),
		ReportTimestamp: true,
	})
}

// ParseLevel parses a log level string.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// ParseFormat parses a log format string.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	for _, known := range allFormats {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}

// GetAllLevelStrings returns the accepted level names.
func GetAllLevelStrings() []string {
	out := make([]string, 0, len(allLevels))
	for _, l := range allLevels {
		out = append(out, string(l))
	}

	return out
}

// GetAllFormatStrings returns the accepted format names.
func GetAllFormatStrings() []string {
	out := make([]string, 0, len(allFormats))
	for _, f := range allFormats {
		out = append(out, string(f))
	}

	return out
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	}

	return slog.LevelInfo
}
