// Package keypath provides [Path], an immutable, ordered sequence of segments
// that addresses a location in a configuration tree.
//
// Every segment of a [Path] is non-blank. Blank segments are silently dropped
// by every constructor, so two paths built in different ways for the same
// logical location always compare equal:
//
//	a := keypath.Parse("server..http.port", '.')
//	b := keypath.New("server", "http", " ", "port")
//	a.Equal(b) // true
//
// The zero [Path] is the canonical empty path, [Root], meaning "this
// location is the root". Operations that "modify" a path return a new value
// and never share mutable state with their receiver.
//
// Use [Path.Key] when a path must be used as a map key; keys are equal
// exactly when the paths are equal.
package keypath
