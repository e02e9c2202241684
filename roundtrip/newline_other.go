//go:build !windows

package roundtrip

const platformNewline = "\n"
