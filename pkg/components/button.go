package components

import (
	"strings"

	"github.com/goliatone/go-uidemo/pkg/variants"
)

// NameButton is the registry name of the button component.
const NameButton = "button"

// Button renders a single native <button>.
type Button struct {
	ID       string
	Type     string // button (default), submit, reset
	Name     string
	Value    string
	Label    string // text content, escaped
	Icon     string // icon name, see Icon
	Content  string // extra markup, sanitised
	Disabled bool

	Intent   string
	Size     string
	Variant  string
	Shape    string
	IconOnly bool
	Class    string

	Attrs Attrs
}

// Classes resolves the button's variant classes.
func (b Button) Classes() string {
	return ButtonVariants.Resolve(variants.Selection{
		"intent":     b.Intent,
		"size":       b.Size,
		"variant":    b.Variant,
		"shape":      b.Shape,
		"isIconOnly": variants.Bool(b.IconOnly),
	}, b.Class)
}

func (b Button) templateData() map[string]any {
	kind := strings.TrimSpace(b.Type)
	if kind == "" {
		kind = "button"
	}
	native := Attrs{
		"id":       emptyToNil(b.ID),
		"name":     emptyToNil(b.Name),
		"value":    emptyToNil(b.Value),
		"disabled": b.Disabled,
	}
	if b.IconOnly && b.Label != "" {
		native["aria-label"] = b.Label
	}
	return map[string]any{
		"type":     kind,
		"class":    b.Classes(),
		"attrs":    b.Attrs.Merge(native).String(),
		"label":    b.Label,
		"iconOnly": b.IconOnly,
		"icon":     Icon(b.Icon, ""),
		"content":  SanitizeDecoration(b.Content),
	}
}

func emptyToNil(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
