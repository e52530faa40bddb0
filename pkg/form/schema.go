package form

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnknownField is returned when an operation names a field the schema
	// does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrSubmitInFlight is returned by Submit while another submission of the
	// same form is running.
	ErrSubmitInFlight = errors.New("form: submit already in flight")
	// ErrInvalid is matched by the ValidationError Submit returns when at least
	// one field fails validation.
	ErrInvalid = errors.New("form: invalid fields")
)

// Input types with native checks beyond required/length/pattern.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeURL      = "url"
	TypeNumber   = "number"
	TypePassword = "password"
	TypeTel      = "tel"
)

// Constraints are the declarative checks a browser would run on the control.
type Constraints struct {
	Required  bool   `json:"required,omitempty"`
	Type      string `json:"type,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	MinLength int    `json:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
}

// Validator is a custom check run after the native constraints pass. It
// returns the message to show, or "" when the value is acceptable. A non-nil
// error aborts validation and propagates to the caller.
type Validator func(ctx context.Context, control *Control) (string, error)

// FieldSpec declares one field of a form.
type FieldSpec struct {
	Name        string
	Label       string
	Placeholder string
	HelperText  string
	Icon        string
	Constraints Constraints
	Validators  []Validator
}

type field struct {
	spec    FieldSpec
	pattern *regexp.Regexp
}

// Schema is the ordered, immutable field registry of a form. Registration
// order is the order fields render and the order focus considers them.
type Schema struct {
	fields []field
	index  map[string]int
}

// NewSchema builds a schema. Names must be non-empty and unique; patterns
// must compile.
func NewSchema(specs ...FieldSpec) (*Schema, error) {
	s := &Schema{
		fields: make([]field, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		spec.Name = strings.TrimSpace(spec.Name)
		if spec.Name == "" {
			return nil, errors.New("form: field name is required")
		}
		if _, exists := s.index[spec.Name]; exists {
			return nil, fmt.Errorf("form: field %q registered twice", spec.Name)
		}
		if spec.Label == "" {
			spec.Label = spec.Name
		}
		spec.Validators = append([]Validator(nil), spec.Validators...)

		f := field{spec: spec}
		if spec.Constraints.Pattern != "" {
			// Pattern attributes match the whole value.
			re, err := regexp.Compile("^(?:" + spec.Constraints.Pattern + ")$")
			if err != nil {
				return nil, fmt.Errorf("form: field %q pattern: %w", spec.Name, err)
			}
			f.pattern = re
		}
		s.index[spec.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error, for package level schemas.
func MustSchema(specs ...FieldSpec) *Schema {
	s, err := NewSchema(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns field names in registration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.spec.Name)
	}
	return names
}

// Fields returns the field specs in registration order.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, f.spec)
	}
	return out
}

// Field looks up a field spec by name.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i].spec, true
}

// WithValidators returns a copy of the schema with validators appended to the
// named field.
func (s *Schema) WithValidators(name string, validators ...Validator) (*Schema, error) {
	if _, ok := s.index[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	specs := s.Fields()
	for i := range specs {
		if specs[i].Name == name {
			specs[i].Validators = append(append([]Validator(nil), specs[i].Validators...), validators...)
		}
	}
	return NewSchema(specs...)
}
