package conf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamldoc/conf"
	"go.jacobcolvin.com/yamldoc/keypath"
	"go.jacobcolvin.com/yamldoc/stringtest"
)

type appSettings struct {
	Name  string
	Tags  []string
	Port  int
	Debug bool
}

func (s *appSettings) object(f *conf.File) *conf.Object {
	return &conf.Object{
		File:   f,
		Header: []string{"App settings."},
		Bindings: []conf.Binding{
			conf.Bind(keypath.New("name"), &s.Name, "Display name."),
			conf.Bind(keypath.New("server", "port"), &s.Port, "Listen port."),
			conf.Bind(keypath.New("debug"), &s.Debug),
			conf.Bind(keypath.New("tags"), &s.Tags, "Free-form tags."),
		},
	}
}

func TestObjectLoadPopulatesDefaults(t *testing.T) {
	t.Parallel()

	loc := filepath.Join(t.TempDir(), "app.yaml")
	f := newFile(t, loc)

	s := &appSettings{Name: "demo", Port: 8080, Tags: []string{"a", "b"}}
	require.NoError(t, s.object(f).Load())

	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF(
		"# App settings.",
		"",
		"# Display name.",
		"name: demo",
		"server:",
		"  # Listen port.",
		"  port: 8080",
		"debug: false",
		"# Free-form tags.",
		"tags:",
		"  - a",
		"  - b",
		"",
	), string(b))
}

func TestObjectLoadReadsFile(t *testing.T) {
	t.Parallel()

	loc := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(loc, []byte(stringtest.JoinLF(
		"# Custom header.",
		"",
		"# My own words.",
		"name: edited",
		"server:",
		"  port: 9000",
		"",
	)), 0o644))

	f := newFile(t, loc)
	s := &appSettings{Name: "demo", Port: 8080, Debug: true}
	require.NoError(t, s.object(f).Load())

	assert.Equal(t, "edited", s.Name)
	assert.Equal(t, 9000, s.Port)
	assert.True(t, s.Debug)

	// Existing documentation and header win.
	assert.Equal(t, []string{"My own words."}, f.Docs(keypath.New("name")))
	assert.Equal(t, []string{"Listen port."}, f.Docs(keypath.New("server", "port")))
	assert.Equal(t, []string{"Custom header."}, f.Header())
}

func TestObjectForceHeader(t *testing.T) {
	t.Parallel()

	loc := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(loc, []byte("# Old.\n\nname: x\n"), 0o644))

	f := newFile(t, loc)
	s := &appSettings{}
	obj := s.object(f)
	obj.ForceHeader = true

	require.NoError(t, obj.Load())
	assert.Equal(t, []string{"App settings."}, f.Header())
}

func TestObjectSave(t *testing.T) {
	t.Parallel()

	loc := filepath.Join(t.TempDir(), "app.yaml")
	f := newFile(t, loc)

	s := &appSettings{Name: "demo", Port: 1}
	obj := s.object(f)
	require.NoError(t, obj.Load())

	s.Port = 2
	require.NoError(t, obj.Save())

	g := newFile(t, loc)
	require.NoError(t, g.Load())

	port, err := conf.GetAs[int](g, keypath.New("server", "port"))
	require.NoError(t, err)
	assert.Equal(t, 2, port)
	assert.Equal(t, []string{"Listen port."}, g.Docs(keypath.New("server", "port")))
}

func TestBindConversionError(t *testing.T) {
	t.Parallel()

	f := newFile(t, filepath.Join(t.TempDir(), "app.yaml"))
	require.NoError(t, f.LoadString("port: not-a-number"))

	var port int

	b := conf.Bind(keypath.New("port"), &port)
	v, ok := f.Get(b.Path)
	require.True(t, ok)
	require.Error(t, b.Set(v))
}
