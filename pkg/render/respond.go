package render

import (
	"bytes"
	"net/http"
	"strconv"
)

// Respond negotiates a renderer from the request, renders view into a buffer
// and writes it with status. When rendering fails nothing of the page is
// written and the client gets a plain 500.
func Respond(w http.ResponseWriter, r *http.Request, registry *Registry, status int, view View) error {
	renderer, err := registry.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Render(r.Context(), view, &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	if status <= 0 {
		status = http.StatusOK
	}
	header := w.Header()
	header.Set("Content-Type", renderer.ContentType())
	header.Set("Content-Length", strconv.Itoa(buf.Len()))
	header.Add("Vary", "Accept")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// WantsJSON reports whether the request negotiates to the JSON renderer.
func WantsJSON(r *http.Request, registry *Registry) bool {
	renderer, err := registry.Negotiate(r.Header.Get("Accept"))
	return err == nil && renderer.Name() == "json"
}
