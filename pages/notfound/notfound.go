// Package notfound renders the 404 page served for every unmatched route.
package notfound

import (
	"net/http"

	"github.com/goliatone/go-uidemo/pages"
	"github.com/goliatone/go-uidemo/pkg/components"
	"github.com/goliatone/go-uidemo/pkg/render"
)

const Template = "pages/not_found"

type Options struct {
	pages.Env
	Links []pages.Link
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Links: []pages.Link{
			{Href: "/", Label: "Home"},
			{Href: "/about", Label: "About Page"},
		},
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	opts.Links = append([]pages.Link{}, opts.Links...)
	return opts
}

func WithEnv(env pages.Env) OptionFn {
	return func(o *Options) {
		o.Env = env
	}
}

func WithLinks(links ...pages.Link) OptionFn {
	return func(o *Options) {
		o.Links = append([]pages.Link{}, links...)
	}
}

// Handler renders the 404 page for any request. It is meant for the router's
// NotFound hook rather than a route pattern.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

func HandlerWithOptions(opts Options) (http.Handler, error) {
	if err := opts.Check("notfound"); err != nil {
		return nil, err
	}
	links := make([]pages.Link, len(opts.Links))
	for i, link := range opts.Links {
		if link.Class == "" {
			link.Class = "link link-info"
		}
		links[i] = link
	}
	icon := components.Icon("alert-triangle", "text-error mx-auto size-12")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts.Respond(w, r, http.StatusNotFound, render.View{
			Template: Template,
			Title:    "Not Found",
			Data: map[string]any{
				"path":  r.URL.Path,
				"links": links,
				"icon":  icon,
			},
			Payload: map[string]any{
				"error": "not found",
				"path":  r.URL.Path,
			},
		})
	}), nil
}
