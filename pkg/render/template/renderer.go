package template

import (
	"io"
)

// TemplateRenderer is the contract every template engine adapter satisfies.
// Render dispatches to RenderString when name looks like inline template
// content and to RenderTemplate otherwise. Output is returned and also copied
// to every writer in out.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
