// Package stringtest provides helpers for building multi-line strings in
// tests.
package stringtest

import (
	"strings"
)

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Input removes a single leading newline and a single trailing newline
// (together with any indentation after it) from s, then strips the
// longest whitespace prefix shared by all non-empty lines. It lets YAML
// fixtures be written as indented raw strings:
//
//	in := stringtest.Input(`
//	    a:
//	      b: 1
//	`) // -> "a:\n  b: 1"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimRight(s, " \t")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}
