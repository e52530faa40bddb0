package components

import (
	"strings"

	"github.com/goliatone/go-uidemo/pkg/variants"
)

// NameInput is the registry name of the input component.
const NameInput = "input"

// Label placements for Input.
const (
	LabelTop    = "top"
	LabelLeft   = "left"
	LabelInside = "inside"
)

// Input renders one native <input> with an optional label, prefix/suffix
// decoration and a description line carrying the error or helper text.
type Input struct {
	ID          string
	Name        string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Pattern     string
	Autofocus   bool
	Disabled    bool
	Focused     bool

	Label          string
	LabelPlacement string
	Error          string
	HelperText     string
	Prefix         string
	Suffix         string

	Intent  string
	Sizing  string
	Variant string
	Full    bool
	Class   string

	Attrs Attrs
}

// DescriptionID is the id of the description element, or "" when none is
// rendered.
func (in Input) DescriptionID() string {
	if in.ID == "" || (in.Error == "" && in.HelperText == "") {
		return ""
	}
	return in.ID + "-description"
}

// Classes resolves the input's variant classes plus decoration padding and the
// error class.
func (in Input) Classes() string {
	state := ""
	switch {
	case in.Disabled:
		state = "disabled"
	case in.Focused:
		state = "focused"
	}
	shape := ""
	if in.Full {
		shape = "full"
	}
	extra := make([]string, 0, 4)
	if in.Prefix != "" {
		extra = append(extra, "pl-10")
	}
	if in.Suffix != "" {
		extra = append(extra, "pr-10")
	}
	if in.Error != "" {
		extra = append(extra, "input-error")
	}
	extra = append(extra, in.Class)
	return InputVariants.Resolve(variants.Selection{
		"intent":  in.Intent,
		"sizing":  in.Sizing,
		"variant": in.Variant,
		"state":   state,
		"shape":   shape,
	}, extra...)
}

func (in Input) placement() string {
	switch strings.TrimSpace(in.LabelPlacement) {
	case LabelLeft:
		return LabelLeft
	case LabelInside:
		return LabelInside
	default:
		return LabelTop
	}
}

func (in Input) templateData() map[string]any {
	placement := in.placement()

	kind := strings.TrimSpace(in.Type)
	if kind == "" {
		kind = "text"
	}
	placeholder := in.Placeholder
	if placement == LabelInside && in.Label != "" {
		placeholder = in.Label
	}

	native := Attrs{
		"id":               emptyToNil(in.ID),
		"name":             emptyToNil(in.Name),
		"type":             kind,
		"value":            in.Value,
		"placeholder":      emptyToNil(placeholder),
		"required":         in.Required,
		"pattern":          emptyToNil(in.Pattern),
		"autofocus":        in.Autofocus,
		"disabled":         in.Disabled,
		"aria-describedby": emptyToNil(in.DescriptionID()),
	}
	if in.Error != "" {
		native["aria-invalid"] = "true"
	}

	containerClass := "flex flex-col gap-1"
	switch placement {
	case LabelLeft:
		containerClass = "flex items-center gap-2"
	case LabelInside:
		containerClass = "relative"
	}

	labelClass := "text-sm font-medium text-base-content"
	descriptionClass := "text-xs text-base-content/70"
	description := in.HelperText
	if in.Error != "" {
		labelClass = "text-sm font-medium text-error"
		descriptionClass = "text-xs text-error"
		description = in.Error
	}

	return map[string]any{
		"id":               in.ID,
		"containerClass":   containerClass,
		"showLabel":        in.Label != "" && placement != LabelInside,
		"label":            in.Label,
		"labelClass":       labelClass,
		"class":            in.Classes(),
		"attrs":            in.Attrs.Merge(native).String(),
		"prefix":           SanitizeDecoration(in.Prefix),
		"suffix":           SanitizeDecoration(in.Suffix),
		"decorated":        in.Prefix != "" || in.Suffix != "",
		"descriptionId":    in.DescriptionID(),
		"description":      description,
		"descriptionClass": descriptionClass,
	}
}
