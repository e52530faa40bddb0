package components

import (
	"strings"

	"github.com/goliatone/go-uidemo/pkg/variants"
)

// NameCheckbox is the registry name of the checkbox component.
const NameCheckbox = "checkbox"

// Checkbox label placements.
const (
	LabelRight = "right"
)

// Checkbox renders one native checkbox inside its label.
type Checkbox struct {
	ID             string
	Name           string
	Value          string
	Label          string
	LabelPlacement string // right (default) or left
	Disabled       bool
	Indeterminate  bool
	Autosubmit     bool
	Error          string
	HelperText     string

	Checked  Binding[bool]
	OnChange func(checked bool)

	Intent  string
	Sizing  string
	Variant string
	Shape   string
	Class   string

	Attrs Attrs
}

// HandleChange applies a user toggle: the binding updates when uncontrolled,
// then OnChange is notified with the new state.
func (c *Checkbox) HandleChange(checked bool) {
	c.Checked.Change(checked)
	if c.OnChange != nil {
		c.OnChange(checked)
	}
}

// Classes resolves the checkbox's variant classes. An error adds
// checkbox-error ahead of the caller's classes.
func (c Checkbox) Classes() string {
	extra := []string{c.Class}
	if c.Error != "" {
		extra = []string{"checkbox-error", c.Class}
	}
	return CheckboxVariants.Resolve(variants.Selection{
		"intent":     c.Intent,
		"sizing":     c.Sizing,
		"variant":    c.Variant,
		"shape":      c.Shape,
		"isDisabled": variants.Bool(c.Disabled),
	}, extra...)
}

// DescriptionID is the id of the description element, or "" when none is
// rendered.
func (c Checkbox) DescriptionID() string {
	if c.ID == "" || (c.Error == "" && c.HelperText == "") {
		return ""
	}
	return c.ID + "-description"
}

func (c Checkbox) templateData() map[string]any {
	native := Attrs{
		"id":                 emptyToNil(c.ID),
		"name":               emptyToNil(c.Name),
		"type":               "checkbox",
		"value":              emptyToNil(c.Value),
		"checked":            c.Checked.Value(),
		"disabled":           c.Disabled,
		"data-indeterminate": c.Indeterminate,
		"data-autosubmit":    c.Autosubmit,
		"aria-describedby":   emptyToNil(c.DescriptionID()),
	}
	if c.Indeterminate {
		native["aria-checked"] = "mixed"
	}
	if c.Error != "" {
		native["aria-invalid"] = "true"
	}

	labelClass := []string{"flex items-center gap-2 cursor-pointer"}
	if strings.TrimSpace(c.LabelPlacement) == LabelLeft {
		labelClass = append(labelClass, "flex-row-reverse justify-end")
	}
	if c.Disabled {
		labelClass = append(labelClass, "cursor-not-allowed opacity-50")
	}
	if c.Error != "" {
		labelClass = append(labelClass, "text-error")
	}

	descriptionClass := "text-xs text-base-content/70"
	description := c.HelperText
	if c.Error != "" {
		descriptionClass = "text-xs text-error"
		description = c.Error
	}

	return map[string]any{
		"labelClass":       variants.Join(labelClass...),
		"label":            c.Label,
		"class":            c.Classes(),
		"attrs":            c.Attrs.Merge(native).String(),
		"descriptionId":    c.DescriptionID(),
		"description":      description,
		"descriptionClass": descriptionClass,
	}
}
