package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/yamldoc/conf"
	"go.jacobcolvin.com/yamldoc/docschema"
	"go.jacobcolvin.com/yamldoc/log"
	"go.jacobcolvin.com/yamldoc/patch"
	"go.jacobcolvin.com/yamldoc/query"
	"go.jacobcolvin.com/yamldoc/textdiff"
	"go.jacobcolvin.com/yamldoc/version"
)

var (
	// ErrReadInput indicates a failure to read a command input.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates a failure to write command output.
	ErrWriteOutput = errors.New("write output")
)

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	logCfg  *log.Config
	fileCfg *conf.Config
	logger  *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout:  stdout,
		stderr:  stderr,
		logCfg:  log.NewConfig(),
		fileCfg: conf.NewConfig(),
		logger:  slog.New(slog.DiscardHandler),
	}

	rootCmd := &cobra.Command{
		Use:   "yamldoc",
		Short: "Read and edit documented YAML configuration files",
		Long: `yamldoc reads and edits YAML configuration files. Comments placed directly
above a key are treated as that key's documentation and survive every edit.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := a.logCfg.NewLogger(a.stderr)
			if err != nil {
				return err
			}

			a.logger = logger

			return nil
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	a.logCfg.RegisterFlags(rootCmd.PersistentFlags())
	a.fileCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{
		a.logCfg.RegisterCompletions,
		a.fileCfg.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(
		a.fmtCmd(),
		a.getCmd(),
		a.setCmd(),
		a.docsCmd(),
		a.schemaCmd(),
		a.validateCmd(),
		a.patchCmd(),
		a.evalCmd(),
		a.versionCmd(),
	)

	return rootCmd
}

func (a *app) open(location string) (*conf.File, error) {
	a.logger.Debug("opening file", slog.String("file", location))

	return a.fileCfg.Open(location, a.logger)
}

func (a *app) fmtCmd() *cobra.Command {
	var write, diff bool

	cmd := &cobra.Command{
		Use:   "fmt <file.yaml>",
		Short: "Rewrite a file in canonical form, keeping documentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			before, err := readOptional(args[0])
			if err != nil {
				return err
			}

			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			after, err := f.SaveString()
			if err != nil {
				return err
			}

			if diff {
				err = a.diff(args[0], before, after)
				if err != nil {
					return err
				}
			}

			if write {
				if before == after {
					a.logger.Debug("file unchanged", slog.String("file", args[0]))

					return nil
				}

				return f.Save()
			}

			if diff {
				return nil
			}

			return a.print(after)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "print a diff instead of the result")

	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file.yaml> <path>",
		Short: "Print the value at a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			p := f.ParsePath(args[1])

			v, ok := f.Get(p)
			if !ok {
				return fmt.Errorf("%w: %s", conf.ErrNotFound, p.Join(f.Separator()))
			}

			out, err := formatValue(v, a.fileCfg.Indent)
			if err != nil {
				return err
			}

			return a.print(out)
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	var docs []string

	cmd := &cobra.Command{
		Use:   "set <file.yaml> <path> <value>",
		Short: "Set the value at a path",
		Long: `Set the value at a path. The value is parsed as YAML, so "8080" is stored as a
number and "{a: 1}" as a section. An empty value deletes the path.`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			v, err := parseValue(args[2])
			if err != nil {
				return err
			}

			p := f.ParsePath(args[1])

			err = f.Set(p, v, docs...)
			if err != nil {
				return err
			}

			a.logger.Info("set value", slog.String("path", p.Join(f.Separator())))

			return f.Save()
		},
	}

	cmd.Flags().StringArrayVar(&docs, "doc", nil, "documentation line, repeatable")

	return cmd
}

func (a *app) docsCmd() *cobra.Command {
	var (
		set       []string
		clearDocs bool
	)

	cmd := &cobra.Command{
		Use:   "docs <file.yaml> [path]",
		Short: "Print or edit key documentation",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if len(set) > 0 || clearDocs {
					return fmt.Errorf("%w: --set and --clear need a path", conf.ErrInvalidOption)
				}

				return a.printAllDocs(f)
			}

			p := f.ParsePath(args[1])

			switch {
			case clearDocs:
				err = f.SetDocs(p)
			case len(set) > 0:
				err = f.SetDocs(p, set...)
			default:
				return a.print(strings.Join(f.Docs(p), "\n"))
			}

			if err != nil {
				return err
			}

			return f.Save()
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "replace the documentation, one line per flag")
	cmd.Flags().BoolVar(&clearDocs, "clear", false, "remove the documentation")
	cmd.MarkFlagsMutuallyExclusive("set", "clear")

	return cmd
}

func (a *app) printAllDocs(f *conf.File) error {
	var sb strings.Builder

	for _, p := range f.DocPaths() {
		sb.WriteString(p.Join(f.Separator()))
		sb.WriteString("\n")

		for _, line := range f.Docs(p) {
			sb.WriteString("  # ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(a.stdout, sb.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func (a *app) schemaCmd() *cobra.Command {
	var (
		title  string
		id     string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "schema <file.yaml> [path]",
		Short: "Generate a JSON Schema from values and documentation",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			var src docschema.Source = f
			if len(args) == 2 {
				src, err = f.Section(f.ParsePath(args[1]))
				if err != nil {
					return err
				}
			}

			gen := docschema.New(
				docschema.WithTitle(title),
				docschema.WithID(id),
				docschema.WithStrict(strict),
				docschema.WithLogger(a.logger),
			)

			schema, err := gen.Generate(src)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return a.print(string(out))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "schema title")
	cmd.Flags().StringVar(&id, "id", "", "schema $id")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject properties not present in the file")

	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.yaml> <schema.json>",
		Short: "Validate a file against a JSON Schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrReadInput, err)
			}

			var schema jsonschema.Schema

			err = json.Unmarshal(data, &schema)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrReadInput, args[1], err)
			}

			err = docschema.Validate(&schema, f.Values())
			if err != nil {
				return err
			}

			a.logger.Info("file is valid", slog.String("file", args[0]))

			return nil
		},
	}
}

func (a *app) patchCmd() *cobra.Command {
	var merge, dryRun bool

	cmd := &cobra.Command{
		Use:   "patch <file.yaml> <patch>",
		Short: "Apply a JSON Patch or JSON Merge Patch",
		Long: `Apply a JSON Patch (RFC 6902) or, with --merge, a JSON Merge Patch (RFC 7386)
to a file. The patch may be JSON or YAML; "-" reads it from stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}

			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			before, err := f.SaveString()
			if err != nil {
				return err
			}

			if merge {
				err = patch.Merge(f, data)
			} else {
				err = patch.Apply(f, data)
			}

			if err != nil {
				return err
			}

			if dryRun {
				after, err := f.SaveString()
				if err != nil {
					return err
				}

				return a.diff(args[0], before, after)
			}

			return f.Save()
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "treat the patch as a JSON Merge Patch")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a diff instead of writing the file")

	return cmd
}

func (a *app) evalCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "eval <file.yaml> <expression>",
		Short: "Evaluate an expression over the file's values",
		Long: `Evaluate an expression over the file's values. Keys are variables, and the
functions get(path), docs(path) and has(path) address keys by path.
With --check, the command fails unless the expression is true.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}

			opts := []query.Option{query.WithSeparator(f.Separator())}

			if check {
				ok, err := query.EvalBool(f, args[1], opts...)
				if err != nil {
					return err
				}

				if !ok {
					return fmt.Errorf("check failed: %s", args[1])
				}

				return nil
			}

			v, err := query.Eval(f, args[1], opts...)
			if err != nil {
				return err
			}

			out, err := formatValue(v, a.fileCfg.Indent)
			if err != nil {
				return err
			}

			return a.print(out)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "fail unless the expression is true")

	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			if !asJSON {
				return a.print(info.String())
			}

			out, err := json.Marshal(info)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return a.print(string(out))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func (a *app) diff(name, before, after string) error {
	if !textdiff.Changed(before, after) {
		a.logger.Debug("no line changes", slog.String("file", name))

		return nil
	}

	color := false
	if f, ok := a.stdout.(*os.File); ok {
		color = textdiff.ShouldColor(f)
	}

	r := textdiff.NewRenderer(textdiff.WithColor(color))

	err := r.Render(a.stdout, name, name, before, after)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func (a *app) print(s string) error {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	_, err := io.WriteString(a.stdout, s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// readOptional returns the content of path, or "" if it does not exist.
func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return string(data), nil
}

func readInput(stdin io.Reader, arg string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if arg == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(arg)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return data, nil
}

// parseValue parses s as a YAML value. The empty string parses as nil.
func parseValue(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var v any

	err := yaml.UnmarshalWithOptions([]byte(s), &v, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("%w: value %q: %w", ErrReadInput, s, err)
	}

	return v, nil
}

// formatValue renders strings as-is and everything else as YAML.
func formatValue(v any, indent int) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	out, err := yaml.MarshalWithOptions(v, yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return strings.TrimSuffix(string(out), "\n"), nil
}
