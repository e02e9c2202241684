package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"

	"go.jacobcolvin.com/yamldoc/keypath"
	"go.jacobcolvin.com/yamldoc/yamlstore"
)

// ErrEval indicates an expression that failed to compile or run.
var ErrEval = errors.New("evaluate expression")

// Source provides values and documentation by path. [*conf.File],
// [*conf.Section] and [*conf.View] implement it.
type Source interface {
	Get(p keypath.Path) (any, bool)
	Docs(p keypath.Path) []string
}

type options struct {
	sep rune
}

// Option configures evaluation.
type Option func(*options)

// WithSeparator sets the separator used to parse path arguments.
func WithSeparator(sep rune) Option {
	return func(o *options) {
		o.sep = sep
	}
}

// Eval evaluates expression against src and returns its result.
func Eval(src Source, expression string, opts ...Option) (any, error) {
	return eval(src, expression, nil, opts)
}

// EvalBool evaluates expression against src. The expression must produce a
// boolean.
func EvalBool(src Source, expression string, opts ...Option) (bool, error) {
	out, err := eval(src, expression, []expr.Option{expr.AsBool()}, opts)
	if err != nil {
		return false, err
	}

	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: result is %T, not bool", ErrEval, out)
	}

	return b, nil
}

func eval(src Source, expression string, extra []expr.Option, opts []Option) (any, error) {
	o := options{sep: keypath.DefaultSeparator}
	for _, opt := range opts {
		opt(&o)
	}

	env := environment(src)

	exprOpts := append([]expr.Option{
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	}, functions(src, o.sep)...)
	exprOpts = append(exprOpts, extra...)

	program, err := expr.Compile(expression, exprOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}

	return out, nil
}

func environment(src Source) map[string]any {
	root, _ := src.Get(keypath.Root)

	env, ok := yamlstore.Plain(root).(map[string]any)
	if !ok || env == nil {
		env = map[string]any{}
	}

	return env
}

func functions(src Source, sep rune) []expr.Option {
	return []expr.Option{
		expr.DisableBuiltin("get"),
		expr.Function("get", func(params ...any) (any, error) {
			path, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("get: path must be a string, got %T", params[0])
			}

			v, _ := src.Get(keypath.Parse(path, sep))

			return yamlstore.Plain(v), nil
		},
			new(func(string) any)),
		expr.Function("docs", func(params ...any) (any, error) {
			path, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("docs: path must be a string, got %T", params[0])
			}

			lines := src.Docs(keypath.Parse(path, sep))
			if lines == nil {
				lines = []string{}
			}

			return lines, nil
		},
			new(func(string) []string)),
		expr.Function("has", func(params ...any) (any, error) {
			path, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("has: path must be a string, got %T", params[0])
			}

			_, found := src.Get(keypath.Parse(path, sep))

			return found, nil
		},
			new(func(string) bool)),
	}
}
