// Package formvalidation renders the schema-driven contact form. Fields are
// declared in an OpenAPI document; validation runs through pkg/form on blur
// (a JSON endpoint called by the page script) and on submit.
package formvalidation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	uidemo "github.com/goliatone/go-uidemo"
	"github.com/goliatone/go-uidemo/pages"
	"github.com/goliatone/go-uidemo/pkg/action"
	"github.com/goliatone/go-uidemo/pkg/components"
	"github.com/goliatone/go-uidemo/pkg/form"
	"github.com/goliatone/go-uidemo/pkg/render"
)

const (
	Template           = "pages/form_validation"
	DefaultOperationID = "submitContact"
	DefaultDocument    = "forms.yaml"
	SubmitButtonID     = "form-submit"

	maxValidateBody = 64 << 10
)

// Runner is the server action called with the values of a valid submission.
type Runner interface {
	Run(ctx context.Context, data any) (action.Project, error)
}

type Options struct {
	pages.Env
	RoutePath   string
	Heading     string
	ScriptSrc   string
	Document    []byte
	OperationID string
	// Validators are custom checks appended to the named fields.
	Validators map[string][]form.Validator
	Action     Runner
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   "/form-validation",
		Heading:     "Form validation",
		ScriptSrc:   "/assets/form.js",
		OperationID: DefaultOperationID,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/form-validation"
	}
	if opts.OperationID == "" {
		opts.OperationID = DefaultOperationID
	}
	return opts
}

func WithEnv(env pages.Env) OptionFn {
	return func(o *Options) {
		o.Env = env
	}
}

func WithAction(runner Runner) OptionFn {
	return func(o *Options) {
		o.Action = runner
	}
}

// WithDocument replaces the embedded forms document.
func WithDocument(doc []byte, operationID string) OptionFn {
	return func(o *Options) {
		o.Document = doc
		o.OperationID = operationID
	}
}

func WithValidators(name string, validators ...form.Validator) OptionFn {
	return func(o *Options) {
		if o.Validators == nil {
			o.Validators = make(map[string][]form.Validator)
		}
		o.Validators[name] = append(o.Validators[name], validators...)
	}
}

// LoadSchema derives the form schema from opts' document, the embedded forms
// document when none is set.
func LoadSchema(ctx context.Context, opts Options) (*form.Schema, error) {
	doc := opts.Document
	if len(doc) == 0 {
		raw, err := fs.ReadFile(uidemo.FormsFS(), DefaultDocument)
		if err != nil {
			return nil, fmt.Errorf("formvalidation: read forms: %w", err)
		}
		doc = raw
	}
	extra := make([]form.OpenAPIOption, 0, len(opts.Validators))
	for name, validators := range opts.Validators {
		extra = append(extra, form.WithFieldValidators(name, validators...))
	}
	schema, err := form.SchemaFromOpenAPI(ctx, doc, opts.OperationID, extra...)
	if err != nil {
		return nil, fmt.Errorf("formvalidation: %w", err)
	}
	return schema, nil
}

type page struct {
	opts     Options
	schema   *form.Schema
	action   string
	validate string
}

func newPage(basePath string, opts Options) (*page, error) {
	if err := opts.Check("formvalidation"); err != nil {
		return nil, err
	}
	if opts.Action == nil {
		opts.Action = action.New(action.WithLogger(opts.Logger))
	}
	schema, err := LoadSchema(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	route := pages.MountPath(basePath, opts.RoutePath)
	return &page{
		opts:     opts,
		schema:   schema,
		action:   route,
		validate: pages.MountPath(route, "/validate"),
	}, nil
}

// RegisterRoutes mounts the form, its submit and the blur validation endpoint
// under basePath and returns the form pattern.
func RegisterRoutes(mux pages.Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", pages.ErrMissingMux
	}
	p, err := newPage(basePath, NewOptions(fns...))
	if err != nil {
		return "", err
	}
	mux.Method(http.MethodGet, p.action, http.HandlerFunc(p.show))
	mux.Method(http.MethodHead, p.action, http.HandlerFunc(p.show))
	mux.Method(http.MethodPost, p.action, http.HandlerFunc(p.submit))
	mux.Method(http.MethodPost, p.validate, http.HandlerFunc(p.validateField))
	return p.action, nil
}

func (p *page) show(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, form.New(p.schema), outcome{})
}

// FieldRequest is the blur endpoint body.
type FieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldResult is the blur endpoint reply. Error is empty for a valid value.
type FieldResult struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func (p *page) validateField(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxValidateBody))
	if err := dec.Decode(&req); err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, fmt.Errorf("formvalidation: decode: %w", err)))
		return
	}

	f := form.New(p.schema)
	if err := f.Input(req.Name, req.Value); err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, err))
		return
	}
	message, err := f.Blur(r.Context(), req.Name)
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(FieldResult{Name: req.Name, Error: message})
}

type outcome struct {
	settled bool
	message string
	project *action.Project
}

// Result is the JSON body of a submission.
type Result struct {
	State   form.State        `json:"state"`
	Values  form.Values       `json:"values,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Focus   string            `json:"focus,omitempty"`
	Project string            `json:"project,omitempty"`
	Message string            `json:"message,omitempty"`
}

func (p *page) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p.opts.Fail(w, r, render.WithStatus(http.StatusBadRequest, err))
		return
	}

	f := form.New(p.schema)
	initial := make(form.Values, len(p.schema.Names()))
	for _, name := range p.schema.Names() {
		initial[name] = r.PostForm.Get(name)
	}
	f.Fill(initial)

	var project action.Project
	err := f.Submit(r.Context(), func(ctx context.Context, values form.Values) error {
		var err error
		project, err = p.opts.Action.Run(ctx, map[string]string(values))
		return err
	})

	var invalid *form.ValidationError
	switch {
	case errors.As(err, &invalid):
		p.render(w, r, http.StatusUnprocessableEntity, f, outcome{})
	case err != nil:
		p.opts.Logger.WithFields(map[string]any{"path": r.URL.Path}).Error(err, "form submission failed")
		if render.WantsJSON(r, p.opts.Pages) {
			p.opts.Fail(w, r, err)
			return
		}
		p.render(w, r, http.StatusInternalServerError, f, outcome{})
	default:
		p.render(w, r, http.StatusOK, f, outcome{
			settled: true,
			message: fmt.Sprintf("Thanks! Your details were sent to %s.", project.Name),
			project: &project,
		})
	}
}

func (p *page) render(w http.ResponseWriter, r *http.Request, status int, f *form.Form, out outcome) {
	result := Result{
		State:   f.State(),
		Errors:  f.Errors(),
		Focus:   f.Focused(),
		Message: out.message,
	}
	if out.settled {
		result.Values = f.Values()
	}
	if out.project != nil {
		result.Project = out.project.Name
	}
	if render.WantsJSON(r, p.opts.Pages) {
		p.opts.Respond(w, r, status, render.View{Template: Template, Payload: result})
		return
	}

	fields := make([]string, 0, len(p.schema.Names()))
	for _, spec := range p.schema.Fields() {
		markup, err := p.opts.Components.Input(p.input(f, spec))
		if err != nil {
			p.opts.Fail(w, r, err)
			return
		}
		fields = append(fields, markup)
	}
	submit, err := p.opts.Components.Button(submitButton(f))
	if err != nil {
		p.opts.Fail(w, r, err)
		return
	}

	assets := p.opts.Components.Assets(components.NameInput, components.NameButton)
	if p.opts.ScriptSrc != "" {
		assets = assets.Merge(render.Assets{Scripts: []render.Script{{Src: p.opts.ScriptSrc, Defer: true}}})
	}
	p.opts.Respond(w, r, status, render.View{
		Template: Template,
		Title:    p.opts.Heading,
		Data: map[string]any{
			"heading":        p.opts.Heading,
			"settled":        out.settled,
			"message":        out.message,
			"action":         p.action,
			"validateAction": p.validate,
			"fieldNames":     strings.Join(p.schema.Names(), ","),
			"fields":         fields,
			"submitButton":   submit,
		},
		Payload: result,
		Assets:  assets,
	})
}

// submitButton carries data-submit so form.js can disable it while a
// submission is in flight.
func submitButton(f *form.Form) components.Button {
	return components.Button{
		ID:       SubmitButtonID,
		Type:     "submit",
		Label:    "Submit",
		Intent:   "primary",
		Disabled: f.IsSubmitting(),
		Attrs:    components.Attrs{"data-submit": true},
	}
}

func (p *page) input(f *form.Form, spec form.FieldSpec) components.Input {
	value, _ := f.Value(spec.Name)
	attrs := components.Attrs{}
	if spec.Constraints.MinLength > 0 {
		attrs["minlength"] = spec.Constraints.MinLength
	}
	if spec.Constraints.MaxLength > 0 {
		attrs["maxlength"] = spec.Constraints.MaxLength
	}
	in := components.Input{
		ID:          "field-" + spec.Name,
		Name:        spec.Name,
		Type:        spec.Constraints.Type,
		Value:       value,
		Placeholder: spec.Placeholder,
		Required:    spec.Constraints.Required,
		Pattern:     spec.Constraints.Pattern,
		Autofocus:   f.Focused() == spec.Name,
		Label:       spec.Label,
		Error:       f.Error(spec.Name),
		HelperText:  spec.HelperText,
		Full:        true,
		Attrs:       attrs,
	}
	if spec.Icon != "" {
		in.Prefix = components.Icon(spec.Icon, "size-4 opacity-60")
	}
	return in
}
