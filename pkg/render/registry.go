package render

import (
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Registry stores renderers by name and picks one for a request's Accept
// header.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	order     []string
	fallback  string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
// The first registered renderer is the negotiation fallback.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.renderers[name] = renderer
	r.order = append(r.order, name)
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// SetFallback changes the renderer used when negotiation finds no match.
func (r *Registry) SetFallback(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("render: renderer %q not found", name)
	}
	r.fallback = name
	return nil
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Negotiate returns the renderer whose content type best matches accept.
// Wildcards, an empty header and unmatched types resolve to the fallback.
func (r *Registry) Negotiate(accept string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.renderers) == 0 {
		return nil, fmt.Errorf("render: no renderers registered")
	}

	for _, mediaType := range parseAccept(accept) {
		if mediaType == "*/*" {
			break
		}
		for _, name := range r.order {
			renderer := r.renderers[name]
			if matchMediaType(mediaType, renderer.ContentType()) {
				return renderer, nil
			}
		}
	}
	return r.renderers[r.fallback], nil
}

type acceptEntry struct {
	mediaType string
	quality   float64
}

func parseAccept(header string) []string {
	var entries []acceptEntry
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(part)
		if err != nil {
			continue
		}
		quality := 1.0
		if raw, ok := params["q"]; ok {
			if q, err := strconv.ParseFloat(raw, 64); err == nil {
				quality = q
			}
		}
		if quality <= 0 {
			continue
		}
		entries = append(entries, acceptEntry{mediaType: mediaType, quality: quality})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].quality > entries[j].quality
	})
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.mediaType)
	}
	return out
}

func matchMediaType(accepted, contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if accepted == mediaType {
		return true
	}
	if major, ok := strings.CutSuffix(accepted, "/*"); ok {
		return strings.HasPrefix(mediaType, major+"/")
	}
	return false
}
