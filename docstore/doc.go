// Package docstore holds documentation for configuration keys.
//
// A [Store] maps a [keypath.Path] to the comment lines that describe the key
// at that path, in top-to-bottom order. A path without documentation and a
// path with an empty block are the same state: storing no lines removes the
// entry.
//
//	docs := docstore.New()
//	docs.Set(keypath.New("server", "port"), "Port to listen on.")
//	docs.Get(keypath.New("server", "port")) // -> ["Port to listen on."]
package docstore
