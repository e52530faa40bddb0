// Package home renders the landing page linking to the demo pages.
package home

import (
	"net/http"

	"github.com/goliatone/go-uidemo/pages"
	"github.com/goliatone/go-uidemo/pkg/render"
)

const Template = "pages/home"

type Options struct {
	pages.Env
	RoutePath string
	Heading   string
	Intro     string
	Links     []pages.Link
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/",
		Heading:   "uidemo",
		Intro:     "Server rendered components, client state and form validation.",
		Links: []pages.Link{
			{Href: "/counter", Label: "Counter"},
			{Href: "/todos", Label: "Todos"},
			{Href: "/form-validation", Label: "Form Validation"},
		},
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/"
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

// Handler builds the home page handler.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	if err := opts.Check("home"); err != nil {
		return nil, err
	}
	links := make([]pages.Link, len(opts.Links))
	for i, link := range opts.Links {
		if link.Class == "" {
			link.Class = pages.LinkClass()
		}
		links[i] = link
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts.Respond(w, r, http.StatusOK, render.View{
			Template: Template,
			Title:    "Home",
			Data: map[string]any{
				"heading": opts.Heading,
				"intro":   opts.Intro,
				"links":   links,
			},
			Payload: map[string]any{"links": links},
		})
	}), nil
}

// RegisterRoutes mounts the page under basePath and returns the pattern.
func RegisterRoutes(mux pages.Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", pages.ErrMissingMux
	}
	opts := NewOptions(fns...)
	h, err := HandlerWithOptions(opts)
	if err != nil {
		return "", err
	}
	pattern := pages.MountPath(basePath, opts.RoutePath)
	mux.Method(http.MethodGet, pattern, h)
	mux.Method(http.MethodHead, pattern, h)
	return pattern, nil
}
