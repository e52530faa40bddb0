package components

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-uidemo/pkg/render"
)

// Descriptor bundles a component template with the assets a page must emit
// once when the component appears on it.
type Descriptor struct {
	Name        string
	Template    string
	Stylesheets []string
	Scripts     []render.Script
}

// Registry tracks component descriptors keyed by name. Callers can register new
// components or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// DefaultRegistry returns a registry holding the button, input and checkbox
// descriptors backed by the templates under components/.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NameButton, Descriptor{Template: "components/button"})
	r.MustRegister(NameInput, Descriptor{Template: "components/input"})
	r.MustRegister(NameCheckbox, Descriptor{
		Template: "components/checkbox",
		Scripts:  []render.Script{{Src: "/assets/checkbox.js", Defer: true}},
	})
	return r
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with name. Existing entries are replaced.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if strings.TrimSpace(descriptor.Template) == "" {
		return fmt.Errorf("components: template for %q is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns a sorted slice of registered component names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assets aggregates the stylesheets and scripts of the named components,
// deduplicated in first-seen order. Unknown names are skipped.
func (r *Registry) Assets(names ...string) render.Assets {
	var out render.Assets
	if len(names) == 0 {
		return out
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		out = out.Merge(render.Assets{
			Stylesheets: descriptor.Stylesheets,
			Scripts:     descriptor.Scripts,
		})
	}
	return out
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Template:    src.Template,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
