package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamldoc/conf"
	"go.jacobcolvin.com/yamldoc/docschema"
	"go.jacobcolvin.com/yamldoc/query"
	"go.jacobcolvin.com/yamldoc/stringtest"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--newline", "lf"))

	err := cmd.Execute()

	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestSetGetDocs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.yaml")

	_, err := run(t, "", "set", path, "server.port", "8080", "--doc", "Listen port.")
	require.NoError(t, err)

	assert.Equal(t, stringtest.JoinLF(
		"server:",
		"  # Listen port.",
		"  port: 8080",
		"",
	), readFile(t, path))

	tcs := map[string]struct {
		want string
		args []string
	}{
		"scalar": {
			args: []string{"get", path, "server.port"},
			want: "8080\n",
		},
		"section": {
			args: []string{"get", path, "server"},
			want: "port: 8080\n",
		},
		"docs of path": {
			args: []string{"docs", path, "server.port"},
			want: "Listen port.\n",
		},
		"all docs": {
			args: []string{"docs", path},
			want: stringtest.JoinLF("server.port", "  # Listen port.", ""),
		},
		"other separator": {
			args: []string{"get", path, "server/port", "--separator", "/"},
			want: "8080\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, "", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "a: 1\n")

	_, err := run(t, "", "get", path, "b")
	require.ErrorIs(t, err, conf.ErrNotFound)
}

func TestSetEmptyDeletes(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", stringtest.JoinLF("a: 1", "# doc", "b: 2", ""))

	_, err := run(t, "", "set", path, "b", "")
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", readFile(t, path))
}

func TestDocsEdit(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", stringtest.JoinLF("a: 1", "b: 2", ""))

	_, err := run(t, "", "docs", path, "b", "--set", "First.", "--set", "Second.")
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("a: 1", "# First.", "# Second.", "b: 2", ""), readFile(t, path))

	_, err = run(t, "", "docs", path, "b", "--clear")
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("a: 1", "b: 2", ""), readFile(t, path))

	_, err = run(t, "", "docs", path, "--clear")
	require.ErrorIs(t, err, conf.ErrInvalidOption)
}

func TestFmt(t *testing.T) {
	t.Parallel()

	messy := stringtest.JoinLF("a:   1", "# doc", "b:    2", "")
	path := writeFile(t, "app.yaml", messy)

	out, err := run(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("a: 1", "# doc", "b: 2", ""), out)
	assert.Equal(t, messy, readFile(t, path))

	out, err = run(t, "", "fmt", path, "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "- a:   1")
	assert.Contains(t, out, "+ a: 1")

	_, err = run(t, "", "fmt", path, "--write")
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("a: 1", "# doc", "b: 2", ""), readFile(t, path))
}

func TestFmtWriteConvertsLineEndings(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", "a: 1\r\n# doc\r\nb: 2\r\n")

	_, err := run(t, "", "fmt", path, "--write")
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("a: 1", "# doc", "b: 2", ""), readFile(t, path))
}

func TestPatch(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", stringtest.JoinLF("a: 1", "# doc", "b: 2", ""))

	out, err := run(t, `{"b": 3}`, "patch", path, "-", "--merge", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "+ b: 3")
	assert.Equal(t, stringtest.JoinLF("a: 1", "# doc", "b: 2", ""), readFile(t, path))

	patchFile := writeFile(t, "patch.yaml", stringtest.JoinLF(
		"- op: replace",
		"  path: /b",
		"  value: 4",
	))

	_, err = run(t, "", "patch", path, patchFile)
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF("a: 1", "# doc", "b: 4", ""), readFile(t, path))
}

func TestEval(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", stringtest.JoinLF("server:", "  # Listen port.", "  port: 8080", ""))

	out, err := run(t, "", "eval", path, `docs("server.port")[0]`)
	require.NoError(t, err)
	assert.Equal(t, "Listen port.\n", out)

	_, err = run(t, "", "eval", path, "server.port > 1024", "--check")
	require.NoError(t, err)

	_, err = run(t, "", "eval", path, "server.port < 1024", "--check")
	require.Error(t, err)

	_, err = run(t, "", "eval", path, "server.port <")
	require.ErrorIs(t, err, query.ErrEval)
}

func TestSchemaAndValidate(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "app.yaml", stringtest.JoinLF("# Listen port.", "", "port: 8080", ""))

	out, err := run(t, "", "schema", path, "--title", "App")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "App"`)
	assert.Contains(t, out, `"type": "integer"`)

	schemaPath := writeFile(t, "schema.json", out)

	_, err = run(t, "", "validate", path, schemaPath)
	require.NoError(t, err)

	_, err = run(t, "", "set", path, "port", "high")
	require.NoError(t, err)

	_, err = run(t, "", "validate", path, schemaPath)
	require.ErrorIs(t, err, docschema.ErrInvalid)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version":`)
}
