package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-uidemo/pkg/render/template"
	"github.com/goliatone/go-uidemo/pkg/theming"
)

// DefaultLayout is the layout template wrapping every HTML page.
const DefaultLayout = "layout"

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithLayout overrides DefaultLayout. An empty name renders page bodies bare.
func WithLayout(name string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.layout = strings.TrimSpace(name)
	}
}

// WithTheme attaches the resolved theme emitted by the layout.
func WithTheme(cfg *theming.Config) HTMLOption {
	return func(r *HTMLRenderer) {
		r.theme = cfg
	}
}

// WithSiteName sets the suffix used in <title>.
func WithSiteName(name string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.siteName = strings.TrimSpace(name)
	}
}

// WithBaseAssets adds stylesheets and scripts emitted on every page.
func WithBaseAssets(assets Assets) HTMLOption {
	return func(r *HTMLRenderer) {
		r.base = r.base.Merge(assets)
	}
}

// HTMLRenderer renders a page template and wraps it in the layout.
type HTMLRenderer struct {
	templates template.TemplateRenderer
	layout    string
	siteName  string
	theme     *theming.Config
	base      Assets
}

var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer builds an HTML renderer on top of a template engine.
func NewHTMLRenderer(templates template.TemplateRenderer, opts ...HTMLOption) (*HTMLRenderer, error) {
	if templates == nil {
		return nil, errors.New("render: template renderer is required")
	}
	r := &HTMLRenderer{
		templates: templates,
		layout:    DefaultLayout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

func (r *HTMLRenderer) Name() string { return "html" }

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *HTMLRenderer) Render(ctx context.Context, view View, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(view.Template) == "" {
		return errors.New("render: view template is required")
	}

	body, err := r.templates.RenderTemplate(view.Template, view.Data)
	if err != nil {
		return fmt.Errorf("render: page %q: %w", view.Template, err)
	}
	if r.layout == "" {
		_, err = io.WriteString(w, body)
		return err
	}

	assets := r.base.Merge(view.Assets)
	layoutData := map[string]any{
		"title":       r.title(view.Title),
		"site":        r.siteName,
		"body":        body,
		"stylesheets": assets.Stylesheets,
		"scripts":     assets.Scripts,
		"theme":       r.themeData(),
	}
	if _, err := r.templates.RenderTemplate(r.layout, layoutData, w); err != nil {
		return fmt.Errorf("render: layout %q: %w", r.layout, err)
	}
	return nil
}

func (r *HTMLRenderer) title(page string) string {
	page = strings.TrimSpace(page)
	switch {
	case page == "":
		return r.siteName
	case r.siteName == "":
		return page
	default:
		return page + " | " + r.siteName
	}
}

func (r *HTMLRenderer) themeData() map[string]any {
	if r.theme == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":        r.theme.Theme,
		"data":        r.theme.DataTheme(),
		"style":       r.theme.CSSVarsStyle(),
		"stylesheets": r.theme.Stylesheets,
		"scripts":     r.theme.Scripts,
	}
}
