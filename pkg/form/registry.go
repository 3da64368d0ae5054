package form

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Descriptor bundles a field factory with the stylesheets its markup relies on.
type Descriptor struct {
	Name        string
	Factory     Factory
	Stylesheets []string
}

// Registry tracks field descriptors keyed by field type. Callers can register
// new types or override defaults.
type Registry struct {
	mu     sync.RWMutex
	fields map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fields: make(map[string]Descriptor),
	}
}

// Clone returns a copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for name, descriptor := range r.fields {
		cloned.fields[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with the provided field type. Existing
// entries are replaced.
func (r *Registry) Register(fieldType string, descriptor Descriptor) error {
	if fieldType = normalize(fieldType); fieldType == "" {
		return fmt.Errorf("form: field type is required")
	}
	if descriptor.Factory == nil {
		return fmt.Errorf("form: factory for %q is nil", fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = fieldType
	r.fields[fieldType] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(fieldType string, descriptor Descriptor) {
	if err := r.Register(fieldType, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by field type.
func (r *Registry) Descriptor(fieldType string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.fields[normalize(fieldType)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Build resolves the factory for fieldType and invokes it with props.
func (r *Registry) Build(fieldType string, props Props) (Field, error) {
	descriptor, ok := r.Descriptor(fieldType)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, fieldType)
	}
	field, err := descriptor.Factory(props)
	if err != nil {
		return nil, fmt.Errorf("form: build %s field %q: %w", descriptor.Name, props.Name, err)
	}
	return field, nil
}

// Names returns a sorted slice of registered field types.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stylesheets returns the de-duplicated stylesheets of the given field types,
// in the order first seen.
func (r *Registry) Stylesheets(fieldTypes []string) []string {
	if len(fieldTypes) == 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, name := range fieldTypes {
		descriptor, ok := r.fields[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seen[href]; exists {
				continue
			}
			seen[href] = struct{}{}
			out = append(out, href)
		}
	}
	return out
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Factory:     src.Factory,
		Stylesheets: slices.Clone(src.Stylesheets),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
