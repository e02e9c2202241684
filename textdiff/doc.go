// Package textdiff computes and renders line diffs between two versions of
// a document.
package textdiff
