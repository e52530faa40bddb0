package components

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// Attrs are native attributes passed through to the rendered element. A true
// bool renders as a bare attribute; false and nil values are omitted.
type Attrs map[string]any

// Merge returns a copy of a with the non-nil values of other applied on top.
func (a Attrs) Merge(other Attrs) Attrs {
	out := make(Attrs, len(a)+len(other))
	for key, value := range a {
		out[key] = value
	}
	for key, value := range other {
		if value == nil {
			continue
		}
		out[key] = value
	}
	return out
}

// String renders the attributes sorted by name, each preceded by a space.
// Names that are not valid attribute names are dropped.
func (a Attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for key := range a {
		if validAttrName(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		switch value := a[key].(type) {
		case nil:
			continue
		case bool:
			if !value {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(key)
		default:
			b.WriteByte(' ')
			b.WriteString(key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(fmt.Sprint(value)))
			b.WriteByte('"')
		}
	}
	return b.String()
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == ':', r == '.':
		default:
			return false
		}
	}
	return true
}
