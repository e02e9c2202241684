// Package version exposes build metadata for the yamldoc binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = revision(debug.ReadBuildInfo)
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Revision  string `json:"revision" yaml:"revision"`
	Branch    string `json:"branch,omitempty" yaml:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty" yaml:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	v := Version
	if v == "" {
		v = "devel"
	}

	return Info{
		Version:   v,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders i on one line.
func (i Info) String() string {
	s := fmt.Sprintf("%s (revision: %s, %s, %s)", i.Version, i.Revision, i.GoVersion, i.Platform)
	if i.BuildDate != "" {
		s += " built " + i.BuildDate
	}

	if i.BuildUser != "" {
		s += " by " + i.BuildUser
	}

	return s
}

func revision(read func() (*debug.BuildInfo, bool)) string {
	rev := "unknown"

	buildInfo, ok := read()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
