package linescan_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamldoc/linescan"
	"go.jacobcolvin.com/yamldoc/stringtest"
)

func TestYAMLTokens(t *testing.T) {
	t.Parallel()

	sc, err := linescan.NewYAML(2)
	require.NoError(t, err)

	tcs := map[string]struct {
		check func(*testing.T, linescan.Token)
		line  string
	}{
		"top level mapping with value": {
			line: "name: demo",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				m, ok := tok.(*linescan.Mapping)
				require.True(t, ok)
				assert.Equal(t, 0, m.Depth)
				assert.Equal(t, "name", m.Key)
				assert.Equal(t, "demo", m.Value)
				assert.True(t, m.HasValue)
			},
		},
		"nested section opener": {
			line: "    server:",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				m, ok := tok.(*linescan.Mapping)
				require.True(t, ok)
				assert.Equal(t, 2, m.Depth)
				assert.Equal(t, "server", m.Key)
				assert.False(t, m.HasValue)
			},
		},
		"key with inner spaces": {
			line: "  http port: 8080",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				m, ok := tok.(*linescan.Mapping)
				require.True(t, ok)
				assert.Equal(t, 1, m.Depth)
				assert.Equal(t, "http port", m.Key)
				assert.Equal(t, "8080", m.Value)
			},
		},
		"odd indentation rounds down": {
			line: "   key: v",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				m, ok := tok.(*linescan.Mapping)
				require.True(t, ok)
				assert.Equal(t, 1, m.Depth)
			},
		},
		"comment": {
			line: "  # hello world",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				c, ok := tok.(*linescan.Comment)
				require.True(t, ok)
				assert.Equal(t, 1, c.Depth)
				assert.Equal(t, "hello world", c.Content)
			},
		},
		"comment without space": {
			line: "#tight",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				c, ok := tok.(*linescan.Comment)
				require.True(t, ok)
				assert.Equal(t, "tight", c.Content)
			},
		},
		"comment keeps extra spaces": {
			line: "#   spaced",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				c, ok := tok.(*linescan.Comment)
				require.True(t, ok)
				assert.Equal(t, "  spaced", c.Content)
			},
		},
		"bare marker is generic": {
			line: "#",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				_, ok := tok.(*linescan.Line)
				assert.True(t, ok)
			},
		},
		"sequence item is generic": {
			line: "  - name: x",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				_, ok := tok.(*linescan.Line)
				assert.True(t, ok)
			},
		},
		"blank line is generic": {
			line: "",
			check: func(t *testing.T, tok linescan.Token) {
				t.Helper()

				l, ok := tok.(*linescan.Line)
				require.True(t, ok)
				assert.Empty(t, l.Text())
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			toks := sc.Scan(tc.line + "\nnext: 1").Collect()
			require.Len(t, toks, 2)
			assert.Equal(t, 0, toks[0].Index())
			assert.Equal(t, tc.line, toks[0].Text())
			tc.check(t, toks[0])
		})
	}
}

func TestScanSplitsLines(t *testing.T) {
	t.Parallel()

	sc, err := linescan.NewYAML(2)
	require.NoError(t, err)

	tcs := map[string]struct {
		input string
		want  []string
	}{
		"lf":                {input: "a: 1\nb: 2", want: []string{"a: 1", "b: 2"}},
		"crlf":              {input: "a: 1\r\nb: 2\r\n", want: []string{"a: 1", "b: 2"}},
		"trailing newlines": {input: "a: 1\n\n\n", want: []string{"a: 1"}},
		"inner blank kept":  {input: "a: 1\n\nb: 2", want: []string{"a: 1", "", "b: 2"}},
		"empty":             {input: "", want: []string{}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			scan := sc.Scan(tc.input)
			assert.Equal(t, tc.input, scan.Content())
			assert.Equal(t, len(tc.want), scan.Len())

			var got []string
			for tok := range scan.All() {
				got = append(got, tok.Text())
			}

			if len(tc.want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestChangingTokenDoesNotAffectScan(t *testing.T) {
	t.Parallel()

	sc, err := linescan.NewYAML(2)
	require.NoError(t, err)

	scan := sc.Scan(stringtest.JoinLF("# doc", "key: 1"))

	first := scan.Collect()
	require.Len(t, first, 2)

	c, ok := first[0].(*linescan.Comment)
	require.True(t, ok)
	c.Content = "changed"

	m, ok := first[1].(*linescan.Mapping)
	require.True(t, ok)
	m.Key = "other"

	second := scan.Collect()
	require.Len(t, second, 2)
	assert.Equal(t, "doc", second[0].(*linescan.Comment).Content)
	assert.Equal(t, "key", second[1].(*linescan.Mapping).Key)
}

func TestScanRestartable(t *testing.T) {
	t.Parallel()

	sc, err := linescan.NewYAML(2)
	require.NoError(t, err)

	scan := sc.Scan(stringtest.JoinLF(
		"# doc",
		"a:",
		"  b: 1",
		"c: 2",
	))

	first := scan.Collect()
	second := scan.Collect()
	require.Len(t, first, 4)
	assert.Equal(t, first, second)

	// Stopping early does not affect the next traversal.
	for range scan.All() {
		break
	}

	assert.Equal(t, first, scan.Collect())
}

func TestMatcherOrder(t *testing.T) {
	t.Parallel()

	var calls []string

	upper := linescan.MustMatcher(`[A-Z]+`, func(m linescan.Match) (linescan.Token, bool) {
		calls = append(calls, "upper")

		return linescan.NewComment(m.Index, m.Line, 0, "upper"), true
	})
	declined := linescan.MustMatcher(`\w+`, func(_ linescan.Match) (linescan.Token, bool) {
		calls = append(calls, "declined")

		return nil, false
	})
	word := linescan.MustMatcher(`\w+`, func(m linescan.Match) (linescan.Token, bool) {
		calls = append(calls, "word")

		return linescan.NewComment(m.Index, m.Line, 0, "word"), true
	})

	sc := linescan.NewScanner(nil, upper, declined, word)
	toks := sc.Scan("ABC\nabc\nabc def").Collect()
	require.Len(t, toks, 3)

	c, ok := toks[0].(*linescan.Comment)
	require.True(t, ok)
	assert.Equal(t, "upper", c.Content)

	c, ok = toks[1].(*linescan.Comment)
	require.True(t, ok)
	assert.Equal(t, "word", c.Content)

	// Partial matches do not count: "abc def" is not entirely \w+.
	_, ok = toks[2].(*linescan.Line)
	assert.True(t, ok)

	assert.Equal(t, []string{"upper", "declined", "word"}, calls)
}

func TestCustomFallback(t *testing.T) {
	t.Parallel()

	fallback := func(m linescan.Match) (linescan.Token, bool) {
		return linescan.NewComment(m.Index, m.Line, 0, strings.ToUpper(m.Line)), true
	}

	toks := linescan.NewScanner(fallback).Scan("x").Collect()
	require.Len(t, toks, 1)

	c, ok := toks[0].(*linescan.Comment)
	require.True(t, ok)
	assert.Equal(t, "X", c.Content)
}

func TestInvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := linescan.NewYAML(0)
	require.ErrorIs(t, err, linescan.ErrInvalidIndent)

	_, err = linescan.NewMatcher(`(`, nil)
	require.ErrorIs(t, err, linescan.ErrInvalidPattern)

	assert.Panics(t, func() {
		linescan.MustMatcher(`(`, nil)
	})
}

func TestPatternsMatchDocumentLayout(t *testing.T) {
	t.Parallel()

	comment := regexp.MustCompile(linescan.CommentPattern)
	mapping := regexp.MustCompile(linescan.MappingPattern)

	assert.True(t, comment.MatchString("    # text"))
	assert.False(t, comment.MatchString("key: # text"))
	assert.True(t, mapping.MatchString("key:"))
	assert.True(t, mapping.MatchString("  two words: value"))
	assert.False(t, mapping.MatchString("- key: value"))
	assert.False(t, mapping.MatchString("key with-dash: value"))
}
