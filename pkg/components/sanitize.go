package components

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	decorationPolicyOnce sync.Once
	decorationPolicy     *bluemonday.Policy
)

// SanitizeDecoration cleans caller supplied markup used as prefix/suffix
// decoration or button content. Inline SVG icons and basic inline elements
// survive; scripts, handlers and links do not.
func SanitizeDecoration(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(decorationSanitizer().Sanitize(trimmed))
}

func decorationSanitizer() *bluemonday.Policy {
	decorationPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("span", "strong", "em", "b", "i", "kbd", "abbr")
		policy.AllowAttrs("class", "title", "aria-hidden").OnElements("span", "strong", "em", "b", "i", "kbd", "abbr")

		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		policy.AllowElements(append([]string{"svg", "g", "title"}, shapes...)...)
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")
		policy.AllowAttrs("fill", "stroke", "class").OnElements("g")
		for _, el := range shapes {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "width", "height", "fill", "stroke",
				"stroke-width", "stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}

		decorationPolicy = policy
	})
	return decorationPolicy
}
