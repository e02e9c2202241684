// Package docschema generates JSON Schema from documented configuration.
//
// The schema mirrors the value tree: sections become objects, scalars get
// their type inferred from the stored value, and the stored value becomes
// the default. Key documentation becomes the description of the matching
// property, so a schema-aware editor shows the same text a reader of the
// YAML file sees in its comments.
//
//	gen := docschema.New(docschema.WithTitle("app"))
//	schema, err := gen.Generate(file)
//
// [Validate] checks values against a schema, for example a file edited by
// hand against the schema of its defaults.
package docschema
