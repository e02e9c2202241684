package conf

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/yamldoc/keypath"
)

// prefixer translates local paths into absolute paths of a resolved file.
// The file is resolved on every call.
type prefixer struct {
	resolve func() (*File, error)
	offset  keypath.Path
}

func (x prefixer) target(p keypath.Path) (*File, keypath.Path, error) {
	f, err := x.resolve()
	if err != nil {
		return nil, keypath.Root, err
	}

	return f, x.offset.Add(p), nil
}

// Get returns the value at p. Sections are returned as [yaml.MapSlice]
// copies.
func (x prefixer) Get(p keypath.Path) (any, bool) {
	f, abs, err := x.target(p)
	if err != nil {
		return nil, false
	}

	return f.get(abs)
}

// Set stores v at p. Non-empty docs replace the documentation of p.
// Setting nil deletes p together with the documentation at and below it.
// Setting a [*Section] copies its values and documentation.
func (x prefixer) Set(p keypath.Path, v any, docs ...string) error {
	f, abs, err := x.target(p)
	if err != nil {
		return err
	}

	return f.set(abs, v, docs)
}

// SetIfAbsent stores v and docs at p only if p holds no value. It reports
// whether v was stored.
func (x prefixer) SetIfAbsent(p keypath.Path, v any, docs ...string) (bool, error) {
	return x.SetIfAbsentFunc(p, func() (any, error) { return v, nil }, docs...)
}

// SetIfAbsentFunc is like SetIfAbsent, but only calls fn when
// the value is needed.
func (x prefixer) SetIfAbsentFunc(p keypath.Path, fn func() (any, error), docs ...string) (bool, error) {
	f, abs, err := x.target(p)
	if err != nil {
		return false, err
	}

	if _, ok := f.get(abs); ok {
		return false, nil
	}

	v, err := fn()
	if err != nil {
		return false, fmt.Errorf("default for %s: %w", abs, err)
	}

	if v == nil {
		return false, nil
	}

	err = f.set(abs, v, docs)
	if err != nil {
		return false, err
	}

	return true, nil
}

// Contains reports whether p holds a value.
func (x prefixer) Contains(p keypath.Path) bool {
	f, abs, err := x.target(p)
	if err != nil {
		return false
	}

	_, ok := f.get(abs)

	return ok
}

// IsSection reports whether p holds a section.
func (x prefixer) IsSection(p keypath.Path) bool {
	f, abs, err := x.target(p)
	if err != nil {
		return false
	}

	return f.store.IsSection(f.key(abs))
}

// Delete removes the value and documentation at p and below. It reports
// whether p held a value.
func (x prefixer) Delete(p keypath.Path) bool {
	f, abs, err := x.target(p)
	if err != nil {
		return false
	}

	if _, ok := f.get(abs); !ok {
		return false
	}

	return f.set(abs, nil, nil) == nil
}

// Keys returns the paths of the keys below this node, relative to it, in
// document order. With deep set, nested keys are included.
func (x prefixer) Keys(deep bool) ([]keypath.Path, error) {
	f, abs, err := x.target(keypath.Root)
	if err != nil {
		return nil, err
	}

	return f.keys(abs, deep)
}

// Section returns the section at p. It fails with [ErrNotSection] if p does
// not hold a section.
func (x prefixer) Section(p keypath.Path) (*Section, error) {
	f, abs, err := x.target(p)
	if err != nil {
		return nil, err
	}

	return f.section(abs)
}

// CreateSection returns the section at p, creating an empty one if p holds
// no value.
func (x prefixer) CreateSection(p keypath.Path, docs ...string) (*Section, error) {
	f, abs, err := x.target(p)
	if err != nil {
		return nil, err
	}

	if _, ok := f.get(abs); !ok {
		err = f.set(abs, yaml.MapSlice{}, docs)
		if err != nil {
			return nil, err
		}
	}

	return f.section(abs)
}

// Docs returns the documentation of p, or nil.
func (x prefixer) Docs(p keypath.Path) []string {
	f, abs, err := x.target(p)
	if err != nil {
		return nil
	}

	return f.docs.Get(abs)
}

// HasDocs reports whether p has documentation.
func (x prefixer) HasDocs(p keypath.Path) bool {
	f, abs, err := x.target(p)
	if err != nil {
		return false
	}

	return f.docs.Has(abs)
}

// SetDocs replaces the documentation of p. Calling it without lines
// removes the documentation.
func (x prefixer) SetDocs(p keypath.Path, lines ...string) error {
	f, abs, err := x.target(p)
	if err != nil {
		return err
	}

	f.docs.Set(abs, lines...)

	return nil
}

// SetDocsIfAbsent sets the documentation of p only if it has none. It
// reports whether the lines were stored.
func (x prefixer) SetDocsIfAbsent(p keypath.Path, lines ...string) (bool, error) {
	f, abs, err := x.target(p)
	if err != nil {
		return false, err
	}

	return f.docs.SetIfAbsent(abs, lines...), nil
}
