// Package log builds [log/slog] handlers from level and format names.
//
// Levels are error, warn, info and debug. Formats are json and logfmt,
// both rendered by [log/slog], and text, rendered by [charm.land/log/v2]
// for people reading a terminal.
//
// Commands register the --log-level and --log-format flags through
// [Config]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	logger, err := cfg.NewLogger(os.Stderr)
//
// The default format, [FormatAuto], picks text when the writer is a
// terminal and logfmt otherwise, so piped output stays machine readable.
package log
