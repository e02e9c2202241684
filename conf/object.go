package conf

import (
	"fmt"

	"go.jacobcolvin.com/yamldoc/keypath"
)

// Binding ties one configuration key to a host variable.
type Binding struct {
	// Get returns the host's current value, used as the default.
	Get func() any
	// Set receives the stored value on load.
	Set  func(v any) error
	Path keypath.Path
	Docs []string
}

// Bind creates a [Binding] for the variable ptr points to. Stored values are
// converted with [Decode].
func Bind[T any](path keypath.Path, ptr *T, docs ...string) Binding {
	return Binding{
		Path: path,
		Docs: docs,
		Get:  func() any { return *ptr },
		Set: func(v any) error {
			out, err := Decode[T](v)
			if err != nil {
				return err
			}

			*ptr = out

			return nil
		},
	}
}

// Object binds a set of host variables to a [File].
//
// On [Object.Load], keys missing from the file are filled with the host's
// current values and their documentation, then the file's values are copied
// into the host and the file is saved. Existing documentation in the file
// wins over the documentation of a binding.
type Object struct {
	File     *File
	Header   []string
	Bindings []Binding
	// ForceHeader rewrites the header on every load. Otherwise the header is
	// only written when the file has none.
	ForceHeader bool
}

// Load reads the file, fills in defaults, updates the bound variables and
// saves the result.
func (o *Object) Load() error {
	err := o.File.Load()
	if err != nil {
		return err
	}

	if len(o.Header) > 0 && (o.ForceHeader || len(o.File.Header()) == 0) {
		o.File.SetHeader(o.Header...)
	}

	for _, b := range o.Bindings {
		_, err = o.File.SetIfAbsent(b.Path, b.Get(), b.Docs...)
		if err != nil {
			return err
		}

		if len(b.Docs) > 0 {
			_, err = o.File.SetDocsIfAbsent(b.Path, b.Docs...)
			if err != nil {
				return err
			}
		}

		v, ok := o.File.Get(b.Path)
		if !ok {
			continue
		}

		err = b.Set(v)
		if err != nil {
			return fmt.Errorf("bind %s: %w", b.Path, err)
		}
	}

	return o.File.Save()
}

// Save copies the bound variables into the file and saves it.
func (o *Object) Save() error {
	for _, b := range o.Bindings {
		err := o.File.Set(b.Path, b.Get())
		if err != nil {
			return fmt.Errorf("bind %s: %w", b.Path, err)
		}
	}

	return o.File.Save()
}
