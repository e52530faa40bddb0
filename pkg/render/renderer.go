package render

import (
	"context"
	"io"
	"strings"
)

// Renderer writes a page view in one representation (HTML, JSON...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, w io.Writer) error
}

// Script describes a script tag emitted by the layout.
type Script struct {
	Src    string `json:"src,omitempty"`
	Inline string `json:"inline,omitempty"`
	Type   string `json:"type,omitempty"`
	Defer  bool   `json:"defer,omitempty"`
	Module bool   `json:"module,omitempty"`
}

// Assets groups the stylesheets and scripts a page needs.
type Assets struct {
	Stylesheets []string `json:"stylesheets,omitempty"`
	Scripts     []Script `json:"scripts,omitempty"`
}

// Merge appends other, dropping duplicates and keeping first-seen order.
func (a Assets) Merge(other Assets) Assets {
	out := Assets{}
	seenStyles := make(map[string]struct{})
	for _, href := range append(append([]string{}, a.Stylesheets...), other.Stylesheets...) {
		href = strings.TrimSpace(href)
		if href == "" {
			continue
		}
		if _, ok := seenStyles[href]; ok {
			continue
		}
		seenStyles[href] = struct{}{}
		out.Stylesheets = append(out.Stylesheets, href)
	}
	seenScripts := make(map[string]struct{})
	for _, script := range append(append([]Script{}, a.Scripts...), other.Scripts...) {
		key := script.Src
		if key == "" {
			key = "inline:" + script.Inline
		}
		if key == "inline:" {
			continue
		}
		if _, ok := seenScripts[key]; ok {
			continue
		}
		seenScripts[key] = struct{}{}
		out.Scripts = append(out.Scripts, script)
	}
	return out
}

// View is what a page handler asks a renderer to produce. Template and Data
// drive the HTML renderer; Payload, when set, is what the JSON renderer
// encodes (Data otherwise).
type View struct {
	Template string
	Title    string
	Data     map[string]any
	Payload  any
	Assets   Assets
}
