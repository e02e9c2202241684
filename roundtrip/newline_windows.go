//go:build windows

package roundtrip

const platformNewline = "\r\n"
