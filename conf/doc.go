// Package conf provides documented YAML configuration files.
//
// A [File] combines an ordered value tree ([yamlstore.Store]), a
// documentation side table ([docstore.Store]) and a comment-preserving
// [roundtrip.Processor]. Application code reads and writes values through a
// tree of [Section] nodes addressed by [keypath.Path]; every key can carry
// a block of comment lines that is written right above it and read back on
// load.
//
//	f, err := conf.New("config.yaml")
//	if err != nil {
//		return err
//	}
//
//	err = f.Load() // A missing file loads as empty.
//
//	server, err := f.Section(keypath.New("server"))
//	err = server.Set(keypath.New("port"), 8080, "Port to listen on.")
//
//	err = f.Save()
//
// Sections translate local paths by prefixing their own path, so
// documentation set on a section lands on the absolute path in the file.
// A [View] applies a fixed offset to a file resolved on every call, which
// is how a [Registry] hands out scoped access to files it owns.
//
// For declarative binding of host variables, see [Object] and [Bind].
package conf
