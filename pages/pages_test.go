package pages

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-uidemo/pkg/render"
)

func TestMountPath(t *testing.T) {
	cases := []struct {
		base, route, want string
	}{
		{"", "/todos", "/todos"},
		{"/", "todos", "/todos"},
		{"/demo/", "/todos", "/demo/todos"},
		{"demo", "/", "/demo"},
		{"", "", "/"},
	}
	for _, tc := range cases {
		if got := MountPath(tc.base, tc.route); got != tc.want {
			t.Fatalf("MountPath(%q, %q) = %q, want %q", tc.base, tc.route, got, tc.want)
		}
	}
}

func TestFailUsesCarriedStatus(t *testing.T) {
	pagesRegistry := render.NewRegistry()
	pagesRegistry.MustRegister(render.NewJSONRenderer(false))
	env := Env{Pages: pagesRegistry}

	req := httptest.NewRequest(http.MethodPost, "/todos/9/delete", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	env.Fail(rec, req, render.WithStatus(http.StatusNotFound, errors.New("no todo at 9")))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"no todo at 9"}` {
		t.Fatalf("unexpected body %q", body)
	}

	rec = httptest.NewRecorder()
	env.Fail(rec, req, errors.New("database password leaked"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("server error message exposed: %q", rec.Body.String())
	}
}

func TestLinkClassUsesLinkVariant(t *testing.T) {
	if !strings.Contains(LinkClass(), "btn-link") {
		t.Fatalf("expected btn-link in %q", LinkClass())
	}
}
