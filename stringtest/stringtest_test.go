package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/yamldoc/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"plain line": {
			input: "a: 1",
			want:  "a: 1",
		},
		"documented mapping": {
			input: `
				# Listen port.
				port: 8080
			`,
			want: "# Listen port.\nport: 8080",
		},
		"nested keys keep relative indent": {
			input: `
				server:
				  # Host name.
				  host: localhost
				  pool:
				    size: 4
			`,
			want: "server:\n  # Host name.\n  host: localhost\n  pool:\n    size: 4",
		},
		"blank separator line": {
			input: "\n\t# header\n\t\n\ta: 1\n",
			want:  "# header\n\na: 1",
		},
		"second leading newline kept": {
			input: "\n\n\t# doc\n\ta: 1",
			want:  "\n# doc\na: 1",
		},
		"second trailing newline kept": {
			input: "a: 1\n\n",
			want:  "a: 1\n",
		},
		"closing indentation dropped": {
			input: "\n\t\ta:\n\t\t  b: 1\n\t",
			want:  "a:\n  b: 1",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stringtest.JoinLF())
	assert.Equal(t, "a: 1\nb: 2\n", stringtest.JoinLF("a: 1", "b: 2", ""))
	assert.Equal(t, "# doc\r\na: 1", stringtest.JoinCRLF("# doc", "a: 1"))
}
