package conf

import (
	"go.jacobcolvin.com/yamldoc/keypath"
)

// View gives scoped access to a file that is looked up on every call. Paths
// are prefixed with a fixed offset before they reach the file.
//
// Create instances with [NewView] or [Registry.View].
type View struct {
	prefixer
}

// NewView creates a [View] of the file returned by resolve.
func NewView(resolve func() (*File, error), offset keypath.Path) *View {
	return &View{prefixer: prefixer{resolve: resolve, offset: offset}}
}

// Offset returns the path prefix applied by v.
func (v *View) Offset() keypath.Path { return v.offset }

// File resolves the file behind v.
func (v *View) File() (*File, error) { return v.resolve() }
