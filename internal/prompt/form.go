package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-uidemo/pkg/form"
)

// FillForm asks for every field of f in registration order, validating each
// answer the way a blur does and asking again until the field is valid. It
// then submits f with handler. A submission rejected by validation sends the
// user back to the focused field.
func FillForm(ctx context.Context, d Driver, f *form.Form, handler form.SubmitHandler) error {
	for _, spec := range f.Schema().Fields() {
		if err := askField(ctx, d, f, spec); err != nil {
			return err
		}
	}

	for {
		err := f.Submit(ctx, handler)
		var invalid *form.ValidationError
		if !errors.As(err, &invalid) {
			return err
		}
		spec, _ := f.Schema().Field(invalid.First)
		if err := askField(ctx, d, f, spec); err != nil {
			return err
		}
	}
}

func askField(ctx context.Context, d Driver, f *form.Form, spec form.FieldSpec) error {
	for {
		current, err := f.Value(spec.Name)
		if err != nil {
			return err
		}
		answer, err := d.Input(ctx, InputConfig{
			Message: spec.Label,
			Default: current,
			Help:    spec.HelperText,
		})
		if err != nil {
			return err
		}
		if err := f.Input(spec.Name, answer); err != nil {
			return err
		}
		message, err := f.Blur(ctx, spec.Name)
		if err != nil {
			return err
		}
		if message == "" {
			return nil
		}
		if err := d.Info(ctx, fmt.Sprintf("✗ %s: %s", spec.Label, message)); err != nil {
			return err
		}
	}
}
