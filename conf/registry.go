package conf

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"go.jacobcolvin.com/yamldoc/keypath"
)

// Factory creates the [File] for an identifier.
type Factory func(id string) (*File, error)

// Registry owns a set of files by identifier. It is safe for concurrent
// use.
//
// Create instances with [NewRegistry] or [NewDirRegistry].
type Registry struct {
	factory Factory
	logger  *slog.Logger
	files   map[string]*File
	mu      sync.Mutex
}

// NewRegistry creates a [Registry] that creates files with factory.
func NewRegistry(factory Factory, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		factory: factory,
		logger:  logger,
		files:   map[string]*File{},
	}
}

// NewDirRegistry creates a [Registry] whose files live in dir, named after
// their identifier plus ext.
func NewDirRegistry(dir, ext string, opts ...Option) *Registry {
	probe := defaultSettings()
	for _, opt := range opts {
		opt(&probe)
	}

	return NewRegistry(func(id string) (*File, error) {
		loc := filepath.Join(dir, id+ext)

		return New(loc, append(slices.Clone(opts), WithID(id))...)
	}, probe.logger)
}

// Get returns the file registered under id.
func (r *Registry) Get(id string) (*File, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]

	return f, ok
}

// GetOrCreate returns the file registered under id. A new file is created
// with the factory, loaded, and registered.
func (r *Registry) GetOrCreate(id string) (*File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.files[id]; ok {
		return f, nil
	}

	f, err := r.factory(id)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", id, err)
	}

	err = f.Load()
	if err != nil {
		return nil, err
	}

	r.files[id] = f
	r.logger.Debug("registered config", slog.String("config", id))

	return f, nil
}

// Put registers f under its identifier, replacing any previous file.
func (r *Registry) Put(f *File) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files[f.ID()] = f
}

// Remove unregisters id and reports whether it was registered.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.files[id]
	delete(r.files, id)

	return ok
}

// IDs returns the registered identifiers, sorted.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Sorted(maps.Keys(r.files))
}

// SaveAll saves every registered file. It attempts all files and returns
// the joined errors.
func (r *Registry) SaveAll() error {
	var errs []error

	for _, id := range r.IDs() {
		f, ok := r.Get(id)
		if !ok {
			continue
		}

		err := f.Save()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}

	return errors.Join(errs...)
}

// View returns a [View] of the file registered under id, created on first
// use, with paths prefixed by offset.
func (r *Registry) View(id string, offset keypath.Path) *View {
	return NewView(func() (*File, error) {
		return r.GetOrCreate(id)
	}, offset)
}
