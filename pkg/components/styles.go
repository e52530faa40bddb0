package components

import "github.com/goliatone/go-uidemo/pkg/variants"

func intentOptions(prefix string) map[string]string {
	out := make(map[string]string)
	for _, intent := range []string{"primary", "secondary", "accent", "info", "success", "warning", "error", "neutral"} {
		out[intent] = prefix + "-" + intent
	}
	return out
}

func sizeOptions(prefix string) map[string]string {
	out := make(map[string]string)
	for _, size := range []string{"xs", "sm", "md", "lg", "xl"} {
		out[size] = prefix + "-" + size
	}
	return out
}

// ButtonVariants resolves daisyUI button classes. Groups: intent, size,
// variant (outline, dash, soft, ghost, link), shape (wide, block, square,
// circle) and isIconOnly.
var ButtonVariants = variants.New("btn", []variants.Group{
	{Name: "intent", Options: intentOptions("btn")},
	{Name: "size", Options: sizeOptions("btn")},
	{Name: "variant", Options: map[string]string{
		"outline": "btn-outline",
		"dash":    "btn-dash",
		"soft":    "btn-soft",
		"ghost":   "btn-ghost",
		"link":    "btn-link",
	}},
	{Name: "shape", Options: map[string]string{
		"wide":   "btn-wide",
		"block":  "btn-block",
		"square": "btn-square",
		"circle": "btn-circle",
	}},
	{Name: "isIconOnly", Options: map[string]string{
		"true":  "aspect-square p-0",
		"false": "",
	}},
}, variants.Selection{"intent": "neutral", "size": "md"})

// InputVariants resolves daisyUI text input classes. Groups: intent, sizing,
// variant (bordered, ghost), state (disabled, focused) and shape (full).
var InputVariants = variants.New("input", []variants.Group{
	{Name: "intent", Options: intentOptions("input")},
	{Name: "sizing", Options: sizeOptions("input")},
	{Name: "variant", Options: map[string]string{
		"bordered": "input-bordered",
		"ghost":    "input-ghost",
	}},
	{Name: "state", Options: map[string]string{
		"disabled": "input-disabled",
		"focused":  "focus:ring-2 focus:ring-opacity-50",
	}},
	{Name: "shape", Options: map[string]string{
		"full": "w-full",
	}},
}, variants.Selection{"intent": "neutral", "sizing": "md", "variant": "bordered"})

// CheckboxVariants resolves daisyUI checkbox classes. Groups: intent, sizing,
// variant (bordered, mark), shape (square, circle) and isDisabled.
var CheckboxVariants = variants.New("checkbox", []variants.Group{
	{Name: "intent", Options: intentOptions("checkbox")},
	{Name: "sizing", Options: sizeOptions("checkbox")},
	{Name: "variant", Options: map[string]string{
		"bordered": "checkbox-bordered",
		"mark":     "checkbox-mark",
	}},
	{Name: "shape", Options: map[string]string{
		"square": "",
		"circle": "rounded-full",
	}},
	{Name: "isDisabled", Options: map[string]string{
		"true":  "checkbox-disabled",
		"false": "",
	}},
}, variants.Selection{"intent": "neutral", "sizing": "md", "shape": "square"})
