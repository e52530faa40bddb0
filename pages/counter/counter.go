// Package counter renders the counter page. The count belongs to one page
// instance: it travels in a hidden field across form posts, or lives on a
// websocket connection once the page script upgrades.
package counter

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-uidemo/pages"
	"github.com/goliatone/go-uidemo/pkg/components"
	"github.com/goliatone/go-uidemo/pkg/render"
)

const (
	Template   = "pages/counter"
	CountField = "count"
)

var ErrInvalidCount = errors.New("counter: invalid count")

type Options struct {
	pages.Env
	RoutePath string
	// SocketPath is the websocket route, relative to RoutePath.
	SocketPath string
	ScriptSrc  string
	// OriginPatterns are accepted websocket origins besides the request host.
	OriginPatterns []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  "/counter",
		SocketPath: "/ws",
		ScriptSrc:  "/assets/counter.js",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/counter"
	}
	if opts.SocketPath == "" {
		opts.SocketPath = "/ws"
	}
	opts.OriginPatterns = append([]string{}, opts.OriginPatterns...)
	return opts
}

func WithEnv(env pages.Env) OptionFn {
	return func(o *Options) {
		o.Env = env
	}
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithOriginPatterns(patterns ...string) OptionFn {
	return func(o *Options) {
		o.OriginPatterns = append([]string{}, patterns...)
	}
}

// Counter is the page state.
type Counter struct {
	Count int `json:"count"`
}

// Increment returns the next state.
func (c Counter) Increment() Counter {
	return Counter{Count: c.Count + 1}
}

// ParseCount reads a count value. Empty means zero.
func ParseCount(raw string) (Counter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Counter{}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return Counter{}, fmt.Errorf("%w: %q", ErrInvalidCount, raw)
	}
	return Counter{Count: n}, nil
}

type page struct {
	opts     Options
	action   string
	wsPath   string
	buttonUI string
}

func newPage(basePath string, opts Options) (*page, error) {
	if err := opts.Check("counter"); err != nil {
		return nil, err
	}
	button, err := opts.Components.Button(components.Button{
		Type:   "submit",
		Label:  "Increment",
		Intent: "primary",
	})
	if err != nil {
		return nil, err
	}
	action := pages.MountPath(basePath, opts.RoutePath)
	return &page{
		opts:     opts,
		action:   action,
		wsPath:   pages.MountPath(action, opts.SocketPath),
		buttonUI: button,
	}, nil
}

func (p *page) view(c Counter) render.View {
	assets := p.opts.Components.Assets(components.NameButton)
	if p.opts.ScriptSrc != "" {
		assets = assets.Merge(render.Assets{Scripts: []render.Script{{Src: p.opts.ScriptSrc, Defer: true}}})
	}
	return render.View{
		Template: Template,
		Title:    "Counter",
		Data: map[string]any{
			"wsPath": p.wsPath,
			"count":  c.Count,
			"action": p.action,
			"hidden": render.HiddenFields(render.Hidden(CountField, c.Count)),
			"button": p.buttonUI,
		},
		Payload: c,
		Assets:  assets,
	}
}

func (p *page) show(w http.ResponseWriter, r *http.Request) {
	c, err := ParseCount(r.URL.Query().Get(CountField))
	if err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, err))
		return
	}
	p.opts.Respond(w, r, http.StatusOK, p.view(c))
}

func (p *page) increment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, err))
		return
	}
	c, err := ParseCount(r.PostForm.Get(CountField))
	if err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, err))
		return
	}
	p.opts.Respond(w, r, http.StatusOK, p.view(c.Increment()))
}

// RegisterRoutes mounts the page, its form post and the websocket under
// basePath and returns the page pattern.
func RegisterRoutes(mux pages.Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", pages.ErrMissingMux
	}
	opts := NewOptions(fns...)
	p, err := newPage(basePath, opts)
	if err != nil {
		return "", err
	}
	mux.Method(http.MethodGet, p.action, http.HandlerFunc(p.show))
	mux.Method(http.MethodHead, p.action, http.HandlerFunc(p.show))
	mux.Method(http.MethodPost, p.action, http.HandlerFunc(p.increment))
	mux.Method(http.MethodGet, p.wsPath, SocketHandler(opts))
	return p.action, nil
}
