// Package variants composes utility-class strings from a base class, ordered
// option groups and caller supplied extras.
package variants

import (
	"sort"
	"strconv"
	"strings"
)

// Group maps the values of one styling axis (intent, size, shape...) to the
// class fragment emitted for it. Empty fragments are valid and emit nothing.
type Group struct {
	Name    string
	Options map[string]string
}

// Selection holds the option value chosen per group name. Missing groups fall
// back to the resolver defaults.
type Selection map[string]string

// Resolver is an immutable variant configuration. It is safe for concurrent
// use once constructed.
type Resolver struct {
	base     string
	groups   []Group
	defaults Selection
}

// New builds a resolver. Groups keep the order given here, which is the order
// their fragments appear in the resolved class string.
func New(base string, groups []Group, defaults Selection) *Resolver {
	r := &Resolver{
		base:     strings.TrimSpace(base),
		groups:   make([]Group, 0, len(groups)),
		defaults: make(Selection, len(defaults)),
	}
	for _, group := range groups {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			continue
		}
		options := make(map[string]string, len(group.Options))
		for value, fragment := range group.Options {
			options[value] = fragment
		}
		r.groups = append(r.groups, Group{Name: name, Options: options})
	}
	for key, value := range defaults {
		r.defaults[key] = value
	}
	return r
}

// Resolve returns base + one fragment per group + extras. Unknown group names
// and unknown values are ignored; the output is whitespace normalised.
func (r *Resolver) Resolve(sel Selection, extra ...string) string {
	if r == nil {
		return Join(extra...)
	}
	parts := make([]string, 0, len(r.groups)+len(extra)+1)
	parts = append(parts, r.base)
	for _, group := range r.groups {
		value, ok := sel[group.Name]
		if !ok || value == "" {
			value, ok = r.defaults[group.Name]
		}
		if !ok {
			continue
		}
		parts = append(parts, group.Options[value])
	}
	parts = append(parts, extra...)
	return Join(parts...)
}

// Groups lists the configured group names in resolution order.
func (r *Resolver) Groups() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.groups))
	for _, group := range r.groups {
		names = append(names, group.Name)
	}
	return names
}

// Values lists the option values accepted by the named group, sorted.
func (r *Resolver) Values(group string) []string {
	if r == nil {
		return nil
	}
	for _, g := range r.groups {
		if g.Name != group {
			continue
		}
		return sortedKeys(g.Options)
	}
	return nil
}

// Default returns the default value configured for group.
func (r *Resolver) Default(group string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r.defaults[group]
	return value, ok
}

// Bool converts a flag into the key boolean groups are declared with.
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// Join concatenates class lists, dropping empty entries and collapsing
// whitespace.
func Join(classes ...string) string {
	var b strings.Builder
	for _, class := range classes {
		for _, field := range strings.Fields(class) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(field)
		}
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
