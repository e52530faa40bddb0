package form

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const emailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

func contactSchema(t *testing.T, validators ...Validator) *Schema {
	t.Helper()
	schema, err := NewSchema(
		FieldSpec{Name: "name", Label: "Name", Constraints: Constraints{Required: true}},
		FieldSpec{
			Name:        "email",
			Label:       "Email",
			Constraints: Constraints{Required: true, Pattern: emailPattern},
			Validators:  validators,
		},
	)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}
	return schema
}

func TestNewSchemaRejectsBadDeclarations(t *testing.T) {
	if _, err := NewSchema(FieldSpec{Name: " "}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := NewSchema(FieldSpec{Name: "a"}, FieldSpec{Name: "a"}); err == nil {
		t.Fatalf("expected duplicate name error")
	}
	if _, err := NewSchema(FieldSpec{Name: "a", Constraints: Constraints{Pattern: "("}}); err == nil {
		t.Fatalf("expected pattern compile error")
	}
}

func TestNativeMessages(t *testing.T) {
	cases := []struct {
		name  string
		cons  Constraints
		value string
		want  string
	}{
		{"required empty", Constraints{Required: true}, "", MsgValueMissing},
		{"optional empty", Constraints{Type: TypeEmail, MinLength: 3}, "", ""},
		{"email", Constraints{Type: TypeEmail}, "bob@", MsgTypeEmail},
		{"email ok", Constraints{Type: TypeEmail}, "bob@example.com", ""},
		{"url", Constraints{Type: TypeURL}, "not a url", MsgTypeURL},
		{"number", Constraints{Type: TypeNumber}, "12a", MsgTypeNumber},
		{"number ok", Constraints{Type: TypeNumber}, "-12.5", ""},
		{"too short", Constraints{MinLength: 5}, "abc", "Please lengthen this text to 5 characters or more (you are currently using 3 characters)."},
		{"too long", Constraints{MaxLength: 2}, "abcd", "Please shorten this text to 2 characters or less (you are currently using 4 characters)."},
		{"pattern anchored", Constraints{Pattern: "[0-9]+"}, "12x", MsgPatternMismatch},
		{"pattern ok", Constraints{Pattern: "[0-9]+"}, "123", ""},
		{"type before pattern", Constraints{Type: TypeEmail, Pattern: "x"}, "nope", MsgTypeEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schema := MustSchema(FieldSpec{Name: "f", Constraints: tc.cons})
			f := New(schema)
			f.Fill(Values{"f": tc.value})
			got, err := f.ValidateField(context.Background(), "f")
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEmptyRequiredFieldFailsAndInputClears(t *testing.T) {
	f := New(contactSchema(t))
	ctx := context.Background()

	msg, err := f.Blur(ctx, "name")
	if err != nil {
		t.Fatalf("blur: %v", err)
	}
	if msg == "" || f.Error("name") != msg {
		t.Fatalf("expected a non-empty recorded message, got %q", msg)
	}
	if f.FieldState("name") != FieldInvalid {
		t.Fatalf("expected invalid state, got %s", f.FieldState("name"))
	}

	if err := f.Input("name", "Ada"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if f.Error("name") != "" {
		t.Fatalf("input should clear the error")
	}
	if !f.IsDirty() {
		t.Fatalf("input should mark the form dirty")
	}
	if f.FieldState("name") != FieldTouched {
		t.Fatalf("expected touched after input, got %s", f.FieldState("name"))
	}

	if msg, _ := f.Blur(ctx, "name"); msg != "" {
		t.Fatalf("expected valid after fix, got %q", msg)
	}
	if f.FieldState("name") != FieldValid {
		t.Fatalf("expected valid state, got %s", f.FieldState("name"))
	}
}

func TestCustomValidatorsRunOnlyAfterNativeChecks(t *testing.T) {
	var calls atomic.Int32
	noExample := func(_ context.Context, c *Control) (string, error) {
		calls.Add(1)
		if strings.HasSuffix(c.Value(), "@example.com") {
			return "example.com addresses are not accepted", nil
		}
		return "", nil
	}
	never := func(context.Context, *Control) (string, error) {
		t.Errorf("second validator must not run after a failure")
		return "", nil
	}

	f := New(contactSchema(t, noExample, never))
	ctx := context.Background()

	_ = f.Input("email", "")
	if msg, _ := f.ValidateField(ctx, "email"); msg != MsgValueMissing {
		t.Fatalf("expected native message, got %q", msg)
	}
	if calls.Load() != 0 {
		t.Fatalf("custom validators ran despite a native failure")
	}

	_ = f.Input("email", "ada@example.com")
	msg, err := f.ValidateField(ctx, "email")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if msg != "example.com addresses are not accepted" {
		t.Fatalf("unexpected message %q", msg)
	}
	c, _ := f.Control("email")
	if c.CheckValidity() || c.ValidationMessage() != msg {
		t.Fatalf("custom validity should be set on the control")
	}
}

func TestSubmitInvalidEmailFocusesEmailAndSkipsHandler(t *testing.T) {
	f := New(contactSchema(t))
	_ = f.Input("name", "Ada")
	_ = f.Input("email", "not-an-email")

	called := false
	err := f.Submit(context.Background(), func(context.Context, Values) error {
		called = true
		return nil
	})

	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.First != "email" {
		t.Fatalf("expected first invalid field email, got %+v", verr)
	}
	if called {
		t.Fatalf("handler must not be called with invalid fields")
	}
	if f.Focused() != "email" {
		t.Fatalf("expected focus on email, got %q", f.Focused())
	}
	if f.IsSubmitting() || f.State() != StateIdle {
		t.Fatalf("submitting flag not cleared: %s", f.State())
	}
	if diff := cmp.Diff(map[string]string{"email": MsgPatternMismatch}, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitFocusFollowsRegistrationOrder(t *testing.T) {
	f := New(contactSchema(t))
	err := f.Submit(context.Background(), nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.First != "name" || f.Focused() != "name" {
		t.Fatalf("expected focus on name, got %q", f.Focused())
	}
	if len(verr.Errors) != 2 {
		t.Fatalf("expected both fields invalid, got %v", verr.Errors)
	}
}

func TestSubmitValidCallsHandlerOnceWithAllValues(t *testing.T) {
	f := New(contactSchema(t))
	_ = f.Input("name", "Ada")
	_ = f.Input("email", "ada@lovelace.org")

	var got []Values
	err := f.Submit(context.Background(), func(_ context.Context, values Values) error {
		got = append(got, values)
		if !f.IsSubmitting() {
			t.Errorf("expected submitting during handler")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := []Values{{"name": "Ada", "email": "ada@lovelace.org"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("handler values mismatch (-want +got):\n%s", diff)
	}
	if f.State() != StateSettled {
		t.Fatalf("expected settled, got %s", f.State())
	}
}

func TestSubmitHandlerFailureClearsSubmitting(t *testing.T) {
	f := New(contactSchema(t))
	_ = f.Input("name", "Ada")
	_ = f.Input("email", "ada@lovelace.org")

	boom := errors.New("boom")
	err := f.Submit(context.Background(), func(context.Context, Values) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if f.IsSubmitting() {
		t.Fatalf("submitting flag not cleared after handler failure")
	}
}

func TestValidatorErrorPropagates(t *testing.T) {
	boom := errors.New("lookup failed")
	failing := func(context.Context, *Control) (string, error) { return "", boom }

	f := New(contactSchema(t, failing))
	_ = f.Input("name", "Ada")
	_ = f.Input("email", "ada@lovelace.org")

	if _, err := f.Blur(context.Background(), "email"); !errors.Is(err, boom) {
		t.Fatalf("expected blur to propagate validator error, got %v", err)
	}

	called := false
	err := f.Submit(context.Background(), func(context.Context, Values) error {
		called = true
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected submit to propagate validator error, got %v", err)
	}
	if called || f.IsSubmitting() {
		t.Fatalf("handler called=%v submitting=%v", called, f.IsSubmitting())
	}
}

func TestSubmitValidatesConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	slow := func(ctx context.Context, _ *Control) (string, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		select {
		case <-time.After(20 * time.Millisecond):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		return "", nil
	}
	schema := MustSchema(
		FieldSpec{Name: "a", Validators: []Validator{slow}},
		FieldSpec{Name: "b", Validators: []Validator{slow}},
		FieldSpec{Name: "c", Validators: []Validator{slow}},
	)
	f := New(schema)
	f.Fill(Values{"a": "1", "b": "2", "c": "3"})

	if err := f.Submit(context.Background(), nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if peak.Load() < 2 {
		t.Fatalf("expected validators to overlap, peak %d", peak.Load())
	}
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	f := New(MustSchema(FieldSpec{Name: "a"}))
	entered := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- f.Submit(context.Background(), func(context.Context, Values) error {
			close(entered)
			<-release
			return nil
		})
	}()

	<-entered
	if err := f.Submit(context.Background(), nil); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestUnknownField(t *testing.T) {
	f := New(contactSchema(t))
	if err := f.Input("nope", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := f.Blur(context.Background(), "nope"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestFillDoesNotMarkDirty(t *testing.T) {
	f := New(contactSchema(t))
	f.Fill(Values{"name": "Ada", "unknown": "x"})
	if f.IsDirty() {
		t.Fatalf("fill must not mark the form dirty")
	}
	if v, _ := f.Value("name"); v != "Ada" {
		t.Fatalf("unexpected value %q", v)
	}
	if diff := cmp.Diff(Values{"name": "Ada", "email": ""}, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
