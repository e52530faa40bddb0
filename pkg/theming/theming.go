// Package theming loads go-theme manifests and turns a theme selection into
// what the page layout renders: a data-theme attribute, CSS custom properties
// and asset URLs.
package theming

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

var (
	// ErrThemeNotFound aliases the registry error for callers that do not
	// import go-theme.
	ErrThemeNotFound = theme.ErrThemeNotFound
	// ErrVariantNotFound is returned when a manifest does not declare a variant.
	ErrVariantNotFound = errors.New("theming: variant not found")
)

// Config is the resolved theme handed to the page renderer.
type Config struct {
	Theme       string
	Variant     string
	Tokens      map[string]string
	CSSVars     map[string]string
	Stylesheets []string
	Scripts     []string
}

// CSSVarsStyle renders CSSVars as a deterministic inline style declaration.
func (c *Config) CSSVarsStyle() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.CSSVars))
	for key := range c.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+c.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}

// DataTheme is the value emitted on <html data-theme>. Variants win over the
// theme name so daisyUI variants such as "dark" apply directly.
func (c *Config) DataTheme() string {
	if c == nil {
		return ""
	}
	if c.Variant != "" {
		return c.Variant
	}
	return c.Theme
}

// LoadRegistry registers every manifest (yaml, yml or json) found at the root
// of fsys.
func LoadRegistry(fsys fs.FS) (*theme.MemoryRegistry, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("theming: read manifests: %w", err)
	}
	registry := theme.NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch path.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		manifest, err := theme.LoadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("theming: %w", err)
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theming: register %s: %w", entry.Name(), err)
		}
	}
	return registry, nil
}

// Resolve selects name and variant through selector and flattens the
// selection. Asset roles prefixed "stylesheet" or "script" become layout URLs,
// ordered by role.
func Resolve(selector theme.ThemeSelector, name, variant string) (*Config, error) {
	if selector == nil {
		return nil, errors.New("theming: selector is required")
	}
	sel, err := selector.Select(name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("theming: %w", err)
	}
	if sel.Manifest == nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if sel.Variant != "" {
		if _, ok := sel.Manifest.Variants[sel.Variant]; !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrVariantNotFound, sel.Variant, sel.Theme)
		}
	}

	rc := sel.RendererTheme(nil)
	cfg := &Config{
		Theme:   rc.Theme,
		Variant: rc.Variant,
		Tokens:  rc.Tokens,
		CSSVars: rc.CSSVars,
	}
	for _, role := range assetRoles(sel) {
		url := assetURL(sel, role, rc.AssetURL)
		switch {
		case strings.HasPrefix(role, "stylesheet"):
			cfg.Stylesheets = append(cfg.Stylesheets, url)
		case strings.HasPrefix(role, "script"):
			cfg.Scripts = append(cfg.Scripts, url)
		}
	}
	return cfg, nil
}

func assetRoles(sel *theme.Selection) []string {
	seen := make(map[string]struct{})
	for role := range sel.Manifest.Assets.Files {
		seen[role] = struct{}{}
	}
	for role := range sel.Manifest.Variants[sel.Variant].Assets.Files {
		seen[role] = struct{}{}
	}
	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// assetURL keeps absolute URLs untouched; go-theme joins every file onto the
// manifest prefix.
func assetURL(sel *theme.Selection, role string, resolve func(string) string) string {
	file := sel.Manifest.Variants[sel.Variant].Assets.Files[role]
	if file == "" {
		file = sel.Manifest.Assets.Files[role]
	}
	if strings.Contains(file, "://") {
		return file
	}
	return resolve(role)
}
