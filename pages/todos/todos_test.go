package todos_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	todospage "github.com/goliatone/go-uidemo/pages/todos"
	"github.com/goliatone/go-uidemo/pkg/form"
	"github.com/goliatone/go-uidemo/pkg/store"
	"github.com/goliatone/go-uidemo/pkg/testsupport"
	"github.com/goliatone/go-uidemo/pkg/todos"
)

type fixture struct {
	router  http.Handler
	storage *store.MemoryStorage
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	storage := store.NewMemoryStorage()
	r := chi.NewRouter()
	_, err := todospage.RegisterRoutes(r, "",
		todospage.WithEnv(testsupport.NewPageEnv(t)),
		todospage.WithStorage(func(*http.Request) store.Storage { return storage }),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return fixture{router: r, storage: storage}
}

func (f fixture) get(t *testing.T, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f fixture) post(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f fixture) list(t *testing.T) todos.List {
	t.Helper()
	rec := f.get(t, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var out todos.List
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return out
}

func (f fixture) add(t *testing.T, title string) {
	t.Helper()
	rec := f.post(t, "/todos", url.Values{todospage.TitleField: {title}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("add %q: expected 303, got %d", title, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/todos" {
		t.Fatalf("add %q: unexpected redirect %q", title, loc)
	}
}

func TestTodosEmptyState(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := testsupport.ParseHTML(t, rec.Body.String())
	if testsupport.FindByID(doc, "todos-empty") == nil {
		t.Fatalf("expected empty state")
	}
	input := testsupport.FindByID(doc, "new-todo")
	if input == nil {
		t.Fatalf("missing new todo input")
	}
	if _, ok := testsupport.Attr(input, "required"); !ok {
		t.Fatalf("expected required input")
	}

	// Opening the list persists the initial value.
	raw, ok, err := f.storage.GetItem(context.Background(), todos.StorageKey)
	if err != nil || !ok || raw != "[]" {
		t.Fatalf("expected persisted empty list, got %q %v %v", raw, ok, err)
	}
}

func TestTodosAddRendersItems(t *testing.T) {
	f := newFixture(t)
	f.add(t, "  Buy milk ")
	f.add(t, "Walk dog")

	rec := f.get(t, "")
	doc := testsupport.ParseHTML(t, rec.Body.String())
	list := testsupport.FindByID(doc, "todo-list")
	if list == nil {
		t.Fatalf("missing todo list")
	}
	var got []string
	for _, li := range testsupport.FindTag(list, "li") {
		got = append(got, testsupport.Text(li))
	}
	if diff := cmp.Diff([]string{"Buy milk", "Walk dog"}, got); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	box := testsupport.FindByID(doc, "todo-1")
	if box == nil {
		t.Fatalf("missing checkbox for second item")
	}
	if _, checked := testsupport.Attr(box, "checked"); checked {
		t.Fatalf("new item should not be checked")
	}
	if _, ok := testsupport.Attr(box, "data-autosubmit"); !ok {
		t.Fatalf("expected autosubmit checkbox")
	}
	if len(testsupport.FindTag(list, "svg")) != 2 {
		t.Fatalf("expected one delete icon per item")
	}
}

func TestTodosRejectsEmptyTitle(t *testing.T) {
	f := newFixture(t)
	rec := f.post(t, "/todos", url.Values{todospage.TitleField: {"   "}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	doc := testsupport.ParseHTML(t, rec.Body.String())
	input := testsupport.FindByID(doc, "new-todo")
	if _, ok := testsupport.Attr(input, "autofocus"); !ok {
		t.Fatalf("expected invalid input to take focus")
	}
	if msg := testsupport.Text(testsupport.FindByID(doc, "new-todo-description")); msg != form.MsgValueMissing {
		t.Fatalf("unexpected message %q", msg)
	}
	if got := f.list(t); len(got) != 0 {
		t.Fatalf("expected no items, got %v", got)
	}
}

func TestTodosToggleUsesLastDoneValue(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Buy milk")

	rec := f.post(t, "/todos/0/toggle", url.Values{todospage.DoneField: {"false", "true"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := f.list(t); !got[0].Done {
		t.Fatalf("expected item done, got %+v", got)
	}

	doc := testsupport.ParseHTML(t, f.get(t, "").Body.String())
	if _, checked := testsupport.Attr(testsupport.FindByID(doc, "todo-0"), "checked"); !checked {
		t.Fatalf("expected checkbox to follow the stored state")
	}

	f.post(t, "/todos/0/toggle", url.Values{todospage.DoneField: {"false"}})
	if got := f.list(t); got[0].Done {
		t.Fatalf("expected item open again, got %+v", got)
	}
}

func TestTodosAddKeepsTitleAsTyped(t *testing.T) {
	f := newFixture(t)
	f.add(t, "  Buy milk ")

	want := todos.List{{Title: "  Buy milk "}}
	if diff := cmp.Diff(want, f.list(t)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	raw, _, err := f.storage.GetItem(context.Background(), todos.StorageKey)
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	if !strings.Contains(raw, `"title":"  Buy milk "`) {
		t.Fatalf("expected untrimmed title in slot, got %s", raw)
	}
}

func TestTodosToggleRejectsMalformedDone(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Read")

	rec := f.post(t, "/todos/0/toggle", url.Values{todospage.DoneField: {"false", "on"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if diff := cmp.Diff(todos.List{{Title: "Read"}}, f.list(t)); diff != "" {
		t.Fatalf("malformed toggle changed the list (-want +got):\n%s", diff)
	}
}

func TestTodosDeleteIsPositional(t *testing.T) {
	f := newFixture(t)
	for _, title := range []string{"a", "b", "c"} {
		f.add(t, title)
	}
	if rec := f.post(t, "/todos/1/delete", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	want := todos.List{{Title: "a"}, {Title: "c"}}
	if diff := cmp.Diff(want, f.list(t)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestTodosIndexErrors(t *testing.T) {
	f := newFixture(t)
	f.add(t, "only")

	cases := []struct {
		path string
		code int
	}{
		{"/todos/4/delete", http.StatusNotFound},
		{"/todos/-1/toggle", http.StatusNotFound},
		{"/todos/abc/delete", http.StatusBadRequest},
	}
	for _, tc := range cases {
		if rec := f.post(t, tc.path, nil); rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.code, rec.Code)
		}
	}
	if got := f.list(t); len(got) != 1 {
		t.Fatalf("failed mutations changed the list: %v", got)
	}
}

func TestTodosJSONMutation(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader("title=Ship"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got todos.List
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(todos.List{{Title: "Ship"}}, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestTodosCorruptSlot(t *testing.T) {
	f := newFixture(t)
	if err := f.storage.SetItem(context.Background(), todos.StorageKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if rec := f.get(t, ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestTodosRegisterRequiresStorage(t *testing.T) {
	_, err := todospage.RegisterRoutes(chi.NewRouter(), "", todospage.WithEnv(testsupport.NewPageEnv(t)))
	if err == nil {
		t.Fatalf("expected missing storage error")
	}
}
