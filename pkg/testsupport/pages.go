package testsupport

import (
	"testing"

	"github.com/goliatone/go-uidemo/pages"
	"github.com/goliatone/go-uidemo/pkg/components"
	"github.com/goliatone/go-uidemo/pkg/render"
)

// NewPageEnv returns page dependencies over the embedded templates: an HTML
// renderer (fallback) plus JSON, and the default component registry.
func NewPageEnv(t *testing.T) pages.Env {
	t.Helper()

	engine := NewEngine(t)
	html, err := render.NewHTMLRenderer(engine, render.WithSiteName("uidemo"))
	if err != nil {
		t.Fatalf("html renderer: %v", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(render.NewJSONRenderer(false))

	comps, err := components.NewRenderer(engine, nil)
	if err != nil {
		t.Fatalf("component renderer: %v", err)
	}
	return pages.Env{Pages: registry, Components: comps}
}
