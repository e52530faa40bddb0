package render

import (
	"context"
	"encoding/json"
	"io"
)

// JSONRenderer encodes the view payload for API style clients.
type JSONRenderer struct {
	indent bool
}

var _ Renderer = JSONRenderer{}

// NewJSONRenderer returns a JSON renderer, optionally pretty printed.
func NewJSONRenderer(indent bool) JSONRenderer {
	return JSONRenderer{indent: indent}
}

func (JSONRenderer) Name() string { return "json" }

func (JSONRenderer) ContentType() string { return "application/json; charset=utf-8" }

func (r JSONRenderer) Render(ctx context.Context, view View, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var payload any = view.Payload
	if payload == nil {
		payload = view.Data
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(payload)
}
