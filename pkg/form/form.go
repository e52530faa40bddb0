// Package form implements field registration and validation for HTML forms:
// native constraint checks with browser style messages, ordered custom
// validator chains, an error map, and a submit flow that validates every
// field concurrently before handing the values to a callback.
package form

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// State is the lifecycle of a form submission.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSettled    State = "settled"
)

// FieldState is the lifecycle of one field.
type FieldState string

const (
	FieldPristine FieldState = "pristine"
	FieldTouched  FieldState = "touched"
	FieldValid    FieldState = "valid"
	FieldInvalid  FieldState = "invalid"
)

// Values maps field names to their submitted values.
type Values map[string]string

// SubmitHandler receives the values of every registered field once all of
// them validated.
type SubmitHandler func(ctx context.Context, values Values) error

// ValidationError is returned by Submit when fields failed validation. It
// matches ErrInvalid.
type ValidationError struct {
	// First is the first invalid field in registration order; it received
	// focus.
	First  string
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("form: invalid fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// Form is one live instance of a schema: the controls, the error map and the
// submission state. A Form is safe for concurrent use.
type Form struct {
	schema   *Schema
	controls []*Control
	byName   map[string]*Control

	mu      sync.Mutex
	errors  map[string]string
	fields  map[string]FieldState
	dirty   bool
	state   State
	focused string
}

// New creates a form instance for schema with empty values.
func New(schema *Schema) *Form {
	f := &Form{
		schema: schema,
		byName: make(map[string]*Control, len(schema.fields)),
		errors: make(map[string]string),
		fields: make(map[string]FieldState, len(schema.fields)),
		state:  StateIdle,
	}
	for _, fd := range schema.fields {
		c := newControl(fd)
		f.controls = append(f.controls, c)
		f.byName[fd.spec.Name] = c
		f.fields[fd.spec.Name] = FieldPristine
	}
	return f
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() *Schema { return f.schema }

// Control returns the control registered under name.
func (f *Form) Control(name string) (*Control, error) {
	c, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return c, nil
}

// Fill sets initial values without marking the form dirty. Unknown names are
// ignored.
func (f *Form) Fill(values Values) {
	for name, value := range values {
		if c, ok := f.byName[name]; ok {
			c.setValue(value)
		}
	}
}

// Input records a user edit: the value changes, any error on the field is
// cleared and the form becomes dirty.
func (f *Form) Input(name, value string) error {
	c, err := f.Control(name)
	if err != nil {
		return err
	}
	c.setValue(value)

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.errors, name)
	if f.fields[name] == FieldInvalid {
		f.fields[name] = FieldTouched
	}
	f.dirty = true
	return nil
}

// Blur marks the field touched and validates it, returning the message.
func (f *Form) Blur(ctx context.Context, name string) (string, error) {
	if _, err := f.Control(name); err != nil {
		return "", err
	}
	f.mu.Lock()
	if f.fields[name] == FieldPristine {
		f.fields[name] = FieldTouched
	}
	f.mu.Unlock()
	return f.ValidateField(ctx, name)
}

// ValidateField runs the single field check: clear the custom validity, run
// the native constraints, and only when they pass run the custom validators
// in order until one reports a message. The outcome is recorded in the error
// map.
func (f *Form) ValidateField(ctx context.Context, name string) (string, error) {
	c, err := f.Control(name)
	if err != nil {
		return "", err
	}
	spec, _ := f.schema.Field(name)

	c.SetCustomValidity("")
	message := c.ValidationMessage()
	if message == "" {
		for _, validator := range spec.Validators {
			if validator == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				return "", err
			}
			msg, err := validator(ctx, c)
			if err != nil {
				return "", fmt.Errorf("form: validate %q: %w", name, err)
			}
			if msg != "" {
				c.SetCustomValidity(msg)
				message = msg
				break
			}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if message != "" {
		f.errors[name] = message
		f.fields[name] = FieldInvalid
	} else {
		delete(f.errors, name)
		f.fields[name] = FieldValid
	}
	return message, nil
}

// Submit validates every field concurrently and waits for all of them. When
// any field is invalid the first one in registration order gets focus and a
// *ValidationError is returned without calling handler. Otherwise handler is
// called once with all values. The submitting flag is cleared on every path.
func (f *Form) Submit(ctx context.Context, handler SubmitHandler) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	next := StateIdle
	defer func() {
		f.mu.Lock()
		f.state = next
		f.mu.Unlock()
	}()

	names := f.schema.Names()
	messages := make([]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			msg, err := f.ValidateField(gctx, name)
			messages[i] = msg
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, msg := range messages {
		if msg == "" {
			continue
		}
		f.Focus(names[i])
		return &ValidationError{First: names[i], Errors: f.Errors()}
	}

	if handler == nil {
		next = StateSettled
		return nil
	}
	if err := handler(ctx, f.Values()); err != nil {
		return fmt.Errorf("form: submit: %w", err)
	}
	next = StateSettled
	return nil
}

// Focus records name as the focused field.
func (f *Form) Focus(name string) {
	f.mu.Lock()
	f.focused = name
	f.mu.Unlock()
}

// Focused returns the focused field, "" when none.
func (f *Form) Focused() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused
}

// Values returns every registered field's current value.
func (f *Form) Values() Values {
	out := make(Values, len(f.controls))
	for _, c := range f.controls {
		out[c.name] = c.Value()
	}
	return out
}

// Value returns one field's current value.
func (f *Form) Value(name string) (string, error) {
	c, err := f.Control(name)
	if err != nil {
		return "", err
	}
	return c.Value(), nil
}

// Errors returns a copy of the error map.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Error returns the message recorded for name.
func (f *Form) Error(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[name]
}

// IsDirty reports whether any Input happened.
func (f *Form) IsDirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// IsSubmitting reports whether a Submit is in flight.
func (f *Form) IsSubmitting() bool {
	return f.State() == StateSubmitting
}

// State returns the submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FieldState returns the lifecycle state of name.
func (f *Form) FieldState(name string) FieldState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}
