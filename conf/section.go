package conf

import (
	"go.jacobcolvin.com/yamldoc/keypath"
)

// Section is a node of a [File]'s tree. All paths passed to its methods are
// relative to the section.
//
// Sections are created on demand and cached by the file. A section whose
// path was removed from the file keeps working on its absolute path, but
// looking it up again fails with [ErrNotSection].
type Section struct {
	prefixer

	parent *Section
	root   *File
	path   keypath.Path
}

func newSection(root *File, parent *Section, path keypath.Path) *Section {
	return &Section{
		prefixer: prefixer{
			resolve: func() (*File, error) { return root, nil },
			offset:  path,
		},
		parent: parent,
		root:   root,
		path:   path,
	}
}

// Path returns the absolute path of s.
func (s *Section) Path() keypath.Path { return s.path }

// Name returns the last segment of the path, or "" for the root section.
func (s *Section) Name() string {
	name, err := s.path.Last()
	if err != nil {
		return ""
	}

	return name
}

// Parent returns the parent section, or nil for the root section.
func (s *Section) Parent() *Section { return s.parent }

// Root returns the file that owns s.
func (s *Section) Root() *File { return s.root }

// Valid reports whether the file still holds a section at the path of s.
func (s *Section) Valid() bool {
	return s.root.store.IsSection(s.root.key(s.path))
}
