// Package todos renders the todo list page. The list lives in the browser's
// storage slot; every accepted mutation commits the whole list back.
package todos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-uidemo/pages"
	"github.com/goliatone/go-uidemo/pkg/components"
	"github.com/goliatone/go-uidemo/pkg/form"
	"github.com/goliatone/go-uidemo/pkg/render"
	"github.com/goliatone/go-uidemo/pkg/store"
	"github.com/goliatone/go-uidemo/pkg/todos"
)

const (
	Template   = "pages/todos"
	TitleField = "title"
	DoneField  = "done"
)

// StorageFunc resolves the storage of the browser behind a request.
type StorageFunc func(r *http.Request) store.Storage

type Options struct {
	pages.Env
	RoutePath string
	Storage   StorageFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{RoutePath: "/todos"}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/todos"
	}
	return opts
}

func WithEnv(env pages.Env) OptionFn {
	return func(o *Options) {
		o.Env = env
	}
}

func WithStorage(fn StorageFunc) OptionFn {
	return func(o *Options) {
		o.Storage = fn
	}
}

// addSchema validates the new todo form the way the browser does for a
// required input.
var addSchema = form.MustSchema(form.FieldSpec{
	Name:        TitleField,
	Label:       "Title",
	Placeholder: "Add a todo",
	Constraints: form.Constraints{Required: true},
})

type page struct {
	opts Options
	base string
}

// RegisterRoutes mounts the list, add, toggle and delete routes under
// basePath and returns the list pattern.
func RegisterRoutes(mux pages.Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", pages.ErrMissingMux
	}
	opts := NewOptions(fns...)
	if err := opts.Check("todos"); err != nil {
		return "", err
	}
	if opts.Storage == nil {
		return "", errors.New("todos: missing storage")
	}

	p := &page{opts: opts, base: pages.MountPath(basePath, opts.RoutePath)}
	mux.Method(http.MethodGet, p.base, http.HandlerFunc(p.list))
	mux.Method(http.MethodHead, p.base, http.HandlerFunc(p.list))
	mux.Method(http.MethodPost, p.base, http.HandlerFunc(p.add))
	mux.Method(http.MethodPost, p.base+"/{index}/toggle", http.HandlerFunc(p.toggle))
	mux.Method(http.MethodPost, p.base+"/{index}/delete", http.HandlerFunc(p.remove))
	return p.base, nil
}

func (p *page) open(r *http.Request) (*store.Store[todos.List], error) {
	return todos.Open(r.Context(), p.opts.Storage(r))
}

func (p *page) list(w http.ResponseWriter, r *http.Request) {
	st, err := p.open(r)
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, st.Snapshot(), newTitle{})
}

type newTitle struct {
	value string
	err   string
}

func (p *page) add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, err))
		return
	}
	st, err := p.open(r)
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}

	title := r.PostForm.Get(TitleField)
	f := form.New(addSchema)
	if err := f.Input(TitleField, strings.TrimSpace(title)); err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	// The trimmed value is validated; the title is stored as typed.
	err = f.Submit(r.Context(), func(ctx context.Context, _ form.Values) error {
		_, err := st.Update(ctx, func(cur todos.List) (todos.List, error) {
			return cur.Add(title)
		})
		return err
	})
	if errors.Is(err, form.ErrInvalid) {
		status := http.StatusUnprocessableEntity
		if render.WantsJSON(r, p.opts.Pages) {
			p.opts.Fail(w, r, render.WithStatus(status, errors.New(f.Error(TitleField))))
			return
		}
		p.render(w, r, status, st.Snapshot(), newTitle{value: title, err: f.Error(TitleField)})
		return
	}
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	p.done(w, r, st.Snapshot(), "todo added")
}

func (p *page) toggle(w http.ResponseWriter, r *http.Request) {
	index, err := p.index(r)
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, err))
		return
	}
	done := false
	if values := r.PostForm[DoneField]; len(values) > 0 {
		raw := values[len(values)-1]
		done, err = strconv.ParseBool(raw)
		if err != nil {
			p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, fmt.Errorf("todos: invalid done value %q", raw)))
			return
		}
	}
	p.mutate(w, r, "todo toggled", func(cur todos.List) (todos.List, error) {
		return cur.SetDone(index, done)
	})
}

func (p *page) remove(w http.ResponseWriter, r *http.Request) {
	index, err := p.index(r)
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	p.mutate(w, r, "todo removed", func(cur todos.List) (todos.List, error) {
		return cur.Remove(index)
	})
}

func (p *page) mutate(w http.ResponseWriter, r *http.Request, event string, fn func(todos.List) (todos.List, error)) {
	st, err := p.open(r)
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	next, err := st.Update(r.Context(), fn)
	if errors.Is(err, todos.ErrIndexOutOfRange) {
		p.opts.Fail(w, r, render.WithStatus(http.StatusNotFound, err))
		return
	}
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	p.done(w, r, next, event)
}

// done answers an accepted mutation: JSON clients get the new list, browsers
// are redirected back to the page.
func (p *page) done(w http.ResponseWriter, r *http.Request, list todos.List, event string) {
	if p.opts.Logger != nil {
		p.opts.Logger.WithFields(map[string]any{"items": len(list)}).Debug(event)
	}
	if render.WantsJSON(r, p.opts.Pages) {
		p.render(w, r, http.StatusOK, list, newTitle{})
		return
	}
	http.Redirect(w, r, p.base, http.StatusSeeOther)
}

func (p *page) index(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, render.WithStatus(http.StatusBadRequest, fmt.Errorf("todos: invalid index %q", raw))
	}
	return index, nil
}

type itemView struct {
	Index        int    `json:"index"`
	ToggleAction string `json:"toggleAction"`
	Checkbox     string `json:"checkbox"`
	DeleteAction string `json:"deleteAction"`
	DeleteButton string `json:"deleteButton"`
}

func (p *page) render(w http.ResponseWriter, r *http.Request, status int, list todos.List, title newTitle) {
	if render.WantsJSON(r, p.opts.Pages) {
		p.opts.Respond(w, r, status, render.View{Template: Template, Payload: list})
		return
	}
	comps := p.opts.Components

	spec, _ := addSchema.Field(TitleField)
	input, err := comps.Input(components.Input{
		ID:          "new-todo",
		Name:        TitleField,
		Value:       title.value,
		Placeholder: spec.Placeholder,
		Required:    spec.Constraints.Required,
		Autofocus:   title.err != "",
		Error:       title.err,
		Full:        true,
		Attrs:       components.Attrs{"aria-label": spec.Label},
	})
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}
	addButton, err := comps.Button(components.Button{
		Type:     "submit",
		Label:    "Add todo",
		Icon:     "plus",
		Intent:   "primary",
		IconOnly: true,
	})
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}

	items := make([]itemView, 0, len(list))
	for i, item := range list {
		done := item.Done
		checkbox, err := comps.Checkbox(components.Checkbox{
			ID:         fmt.Sprintf("todo-%d", i),
			Name:       DoneField,
			Value:      "true",
			Label:      item.Title,
			Autosubmit: true,
			Checked:    components.Controlled(func() bool { return done }),
		})
		if err != nil {
			p.opts.Fail(w, r, err)
			return
		}
		deleteButton, err := comps.Button(components.Button{
			Type:     "submit",
			Label:    "Delete " + item.Title,
			Icon:     "trash",
			Intent:   "error",
			Size:     "sm",
			IconOnly: true,
		})
		if err != nil {
			p.opts.Fail(w, r, err)
			return
		}
		items = append(items, itemView{
			Index:        i,
			ToggleAction: fmt.Sprintf("%s/%d/toggle", p.base, i),
			Checkbox:     checkbox,
			DeleteAction: fmt.Sprintf("%s/%d/delete", p.base, i),
			DeleteButton: deleteButton,
		})
	}

	p.opts.Respond(w, r, status, render.View{
		Template: Template,
		Title:    "Todos",
		Data: map[string]any{
			"addAction": p.base,
			"input":     input,
			"addButton": addButton,
			"empty":     len(items) == 0,
			"items":     items,
		},
		Payload: list,
		Assets:  comps.Assets(components.NameInput, components.NameButton, components.NameCheckbox),
	})
}
