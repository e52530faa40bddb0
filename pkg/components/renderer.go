package components

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-uidemo/pkg/render"
	"github.com/goliatone/go-uidemo/pkg/render/template"
)

// Renderer turns component values into HTML through the templates named by
// a Registry. It is stateless and safe for concurrent use.
type Renderer struct {
	templates template.TemplateRenderer
	registry  *Registry
}

// NewRenderer builds a component renderer. A nil registry uses
// DefaultRegistry.
func NewRenderer(templates template.TemplateRenderer, registry *Registry) (*Renderer, error) {
	if templates == nil {
		return nil, errors.New("components: template renderer is required")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Renderer{templates: templates, registry: registry}, nil
}

// Registry exposes the descriptor registry, mainly for asset aggregation.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Assets returns the assets needed by the named components.
func (r *Renderer) Assets(names ...string) render.Assets {
	return r.registry.Assets(names...)
}

// Button renders b.
func (r *Renderer) Button(b Button) (string, error) {
	return r.render(NameButton, b.templateData())
}

// Input renders in.
func (r *Renderer) Input(in Input) (string, error) {
	return r.render(NameInput, in.templateData())
}

// Checkbox renders c.
func (r *Renderer) Checkbox(c Checkbox) (string, error) {
	return r.render(NameCheckbox, c.templateData())
}

func (r *Renderer) render(name string, data map[string]any) (string, error) {
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("components: %q is not registered", name)
	}
	out, err := r.templates.RenderTemplate(descriptor.Template, data)
	if err != nil {
		return "", fmt.Errorf("components: render %s: %w", name, err)
	}
	return out, nil
}
