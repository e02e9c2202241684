// Package yamlstore is an ordered YAML value tree addressed by string
// paths.
//
// A [Store] keeps a mapping document as a [yaml.MapSlice], so keys keep
// their document order through load, edit, and save. Paths are keys joined
// with a single separator character ("server.port" by default). Writing a
// value below a missing key creates the intermediate sections; writing nil
// deletes.
//
// [Store.Marshal] produces the store's own serialization, which carries no
// comments. Pair it with [go.jacobcolvin.com/yamldoc/roundtrip] to keep
// documentation.
package yamlstore
