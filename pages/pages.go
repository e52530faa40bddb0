// Package pages holds what every route page shares: the router surface they
// register on, their rendering dependencies and the error responder.
package pages

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-uidemo/internal/logging"
	"github.com/goliatone/go-uidemo/pkg/components"
	"github.com/goliatone/go-uidemo/pkg/render"
)

// Mux is the minimal router interface pages register on. It is satisfied by
// chi.Router.
type Mux interface {
	Method(method, pattern string, handler http.Handler)
}

// Env carries the rendering dependencies of a page.
type Env struct {
	Pages      *render.Registry
	Components *components.Renderer
	Logger     *logging.Logger
}

// Check reports missing dependencies for the named page.
func (e Env) Check(page string) error {
	switch {
	case e.Pages == nil:
		return fmt.Errorf("%s: missing page renderers", page)
	case e.Components == nil:
		return fmt.Errorf("%s: missing component renderer", page)
	}
	return nil
}

func (e Env) logger() *logging.Logger {
	if e.Logger == nil {
		return logging.Nop()
	}
	return e.Logger
}

// Respond renders view with status and logs render failures.
func (e Env) Respond(w http.ResponseWriter, r *http.Request, status int, view render.View) {
	if err := render.Respond(w, r, e.Pages, status, view); err != nil {
		e.logger().WithFields(map[string]any{
			"path":     r.URL.Path,
			"template": view.Template,
		}).Error(err, "render page")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Fail writes err with the status it carries. Server errors are logged and
// their message is not exposed.
func (e Env) Fail(w http.ResponseWriter, r *http.Request, err error) {
	code := render.StatusOf(err)
	message := http.StatusText(code)
	if code < http.StatusInternalServerError && err != nil {
		message = err.Error()
	} else {
		e.logger().WithFields(map[string]any{"path": r.URL.Path}).Error(err, "request failed")
	}

	if e.Pages != nil && render.WantsJSON(r, e.Pages) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(errorBody{Error: message})
		return
	}
	http.Error(w, message, code)
}

// Link is a navigation link rendered by page templates.
type Link struct {
	Href  string `json:"href"`
	Label string `json:"label"`
	Class string `json:"class,omitempty"`
}

// LinkClass is the class string of the button link variant used for page
// navigation.
func LinkClass() string {
	return components.Button{Variant: "link"}.Classes()
}

// MountPath joins basePath and routePath into a route pattern.
func MountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if routePath == "/" {
		return basePath
	}
	return basePath + routePath
}

// ErrMissingMux is returned by RegisterRoutes when mux is nil.
var ErrMissingMux = errors.New("pages: missing mux")
