// Package uidemo embeds the web assets (page and component templates, static
// files, form definitions and theme manifests) shared by the server and CLI.
package uidemo

import (
	"embed"
	"io/fs"
)

//go:embed web/templates web/assets web/forms web/themes
var webFS embed.FS

// TemplatesFS exposes the pongo2 templates rooted at web/templates.
func TemplatesFS() fs.FS {
	return mustSub("web/templates")
}

// AssetsFS exposes the static files served under /assets.
func AssetsFS() fs.FS {
	return mustSub("web/assets")
}

// FormsFS exposes the OpenAPI documents declaring the demo forms.
func FormsFS() fs.FS {
	return mustSub("web/forms")
}

// ThemesFS exposes the go-theme manifests, one file per theme.
func ThemesFS() fs.FS {
	return mustSub("web/themes")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(webFS, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
