// Package patch applies JSON Patch (RFC 6902) and JSON Merge Patch
// (RFC 7386) documents to configuration values.
//
// Patches may be written as JSON or YAML. Values are patched as a whole and
// written back through the target's Set method, so documentation is kept,
// including documentation of paths the patch removed. Keys that existed
// before the patch keep their order; new keys follow them.
package patch
