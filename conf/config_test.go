package conf_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamldoc/conf"
	"go.jacobcolvin.com/yamldoc/keypath"
)

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	cfg := conf.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cmd.Flags().Parse([]string{"--separator", "/", "--indent", "4", "--newline", "lf"}))
	assert.Equal(t, "/", cfg.Separator)
	assert.Equal(t, 4, cfg.Indent)
	assert.Equal(t, 100, cfg.MaxDepth)

	f, err := cfg.Open(filepath.Join(t.TempDir(), "c.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, '/', f.Separator())

	require.NoError(t, f.Set(f.ParsePath("a/b"), 1))

	out, err := f.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "a:\n    b: 1\n", out)
}

func TestConfigOptionsErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]*conf.Config{
		"empty separator": {Separator: "", Indent: 2, MaxDepth: 10},
		"long separator":  {Separator: "::", Indent: 2, MaxDepth: 10},
		"bad newline":     {Separator: ".", Indent: 2, MaxDepth: 10, Newline: "cr"},
	}

	for name, cfg := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := cfg.Options()
			require.ErrorIs(t, err, conf.ErrInvalidOption)
		})
	}
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"separator": {flag: "separator", want: []string{".", "/", ":"}},
		"newline":   {flag: "newline", want: []string{"lf", "crlf"}},
		"indent":    {flag: "indent"},
		"max-depth": {flag: "max-depth"},
	}

	cfg := conf.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, directive := fn(cmd, nil, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, tc.want, values)
		})
	}
}

func TestCustomFlagNames(t *testing.T) {
	t.Parallel()

	cfg := conf.Flags{
		Separator: "sep",
		Indent:    "ind",
		MaxDepth:  "depth",
		Newline:   "nl",
	}.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cmd.Flags().Parse([]string{"--sep", ":", "--depth", "5"}))

	opts, err := cfg.Options()
	require.NoError(t, err)

	f, err := conf.New("", opts...)
	require.NoError(t, err)
	assert.Equal(t, keypath.New("a", "b"), f.ParsePath("a:b"))
}
