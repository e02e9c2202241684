// Package query evaluates expressions over configuration values.
//
// Expressions use the [github.com/expr-lang/expr] language. Values are
// available as variables ("server.port > 1024"), and three functions
// address keys by path string:
//
//   - get(path) returns the value at path, or nil. It replaces the
//     builtin of the same name.
//   - docs(path) returns the documentation lines of path.
//   - has(path) reports whether path holds a value.
//
// Paths are parsed with the separator given by [WithSeparator].
package query
