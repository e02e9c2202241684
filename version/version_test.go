package version_test

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/yamldoc/version"
)

func TestRevision(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		info *debug.BuildInfo
		want string
		ok   bool
	}{
		"no build info": {
			want: "unknown",
		},
		"clean": {
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "false"},
			}},
			ok:   true,
			want: "abc123",
		},
		"dirty": {
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "true"},
			}},
			ok:   true,
			want: "abc123-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := version.RevisionFrom(func() (*debug.BuildInfo, bool) {
				return tc.info, tc.ok
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	info := version.Info{
		Version:   "v1.2.3",
		Revision:  "abc",
		GoVersion: "go1.25.0",
		Platform:  "linux/amd64",
		BuildDate: "2026-01-02",
		BuildUser: "ci",
	}

	assert.Equal(t, "v1.2.3 (revision: abc, go1.25.0, linux/amd64) built 2026-01-02 by ci", info.String())

	got := version.Get()
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, got.Platform)
	assert.NotEmpty(t, got.Version)
}
