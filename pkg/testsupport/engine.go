package testsupport

import (
	"testing"

	uidemo "github.com/goliatone/go-uidemo"
	"github.com/goliatone/go-uidemo/pkg/render/template/gotemplate"
)

// NewEngine returns a template engine over the embedded web templates.
func NewEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(uidemo.TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
