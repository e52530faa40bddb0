package components

import (
	"fmt"
	"sort"
	"strings"
)

// Lucide icon bodies (https://lucide.dev), 24x24 stroke icons.
var icons = map[string]string{
	"plus":           `<path d="M5 12h14"/><path d="M12 5v14"/>`,
	"trash":          `<path d="M3 6h18"/><path d="M19 6v14c0 1-1 2-2 2H7c-1 0-2-1-2-2V6"/><path d="M8 6V4c0-1 1-2 2-2h4c1 0 2 1 2 2v2"/>`,
	"alert-triangle": `<path d="m21.73 18-8-14a2 2 0 0 0-3.48 0l-8 14A2 2 0 0 0 4 21h16a2 2 0 0 0 1.73-3"/><path d="M12 9v4"/><path d="M12 17h.01"/>`,
	"mail":           `<rect width="20" height="16" x="2" y="4" rx="2"/><path d="m22 7-8.97 5.7a1.94 1.94 0 0 1-2.06 0L2 7"/>`,
	"user":           `<path d="M19 21v-2a4 4 0 0 0-4-4H9a4 4 0 0 0-4 4v2"/><circle cx="12" cy="7" r="4"/>`,
}

// Icon returns the sanitised SVG markup for a named icon, or "" when unknown.
func Icon(name string, class string) string {
	body, ok := icons[strings.TrimSpace(name)]
	if !ok {
		return ""
	}
	if class == "" {
		class = "size-4"
	}
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true" class="%s">%s</svg>`,
		class, body,
	)
	return SanitizeDecoration(svg)
}

// IconNames lists the available icons.
func IconNames() []string {
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
