package form

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	uidemo "github.com/goliatone/go-uidemo"
)

func loadForms(t *testing.T) []byte {
	t.Helper()
	data, err := fs.ReadFile(uidemo.FormsFS(), "forms.yaml")
	if err != nil {
		t.Fatalf("read forms: %v", err)
	}
	return data
}

func TestSchemaFromOpenAPI(t *testing.T) {
	schema, err := SchemaFromOpenAPI(context.Background(), loadForms(t), "submitContact")
	if err != nil {
		t.Fatalf("schema from openapi: %v", err)
	}

	want := []FieldSpec{
		{
			Name:        "name",
			Label:       "Name",
			Icon:        "user",
			Constraints: Constraints{Required: true, Type: TypeText, MaxLength: 80},
		},
		{
			Name:        "email",
			Label:       "Email",
			Icon:        "mail",
			HelperText:  "We never share your address.",
			Constraints: Constraints{Required: true, Type: TypeEmail, Pattern: emailPattern},
		},
	}
	if diff := cmp.Diff(want, schema.Fields(), cmpopts.IgnoreFields(FieldSpec{}, "Validators")); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFromOpenAPIAttachesValidators(t *testing.T) {
	reject := func(context.Context, *Control) (string, error) { return "taken", nil }

	schema, err := SchemaFromOpenAPI(context.Background(), loadForms(t), "submitContact",
		WithFieldValidators("email", reject),
	)
	if err != nil {
		t.Fatalf("schema from openapi: %v", err)
	}
	f := New(schema)
	_ = f.Input("email", "ada@lovelace.org")
	if msg, _ := f.ValidateField(context.Background(), "email"); msg != "taken" {
		t.Fatalf("expected custom validator message, got %q", msg)
	}

	_, err = SchemaFromOpenAPI(context.Background(), loadForms(t), "submitContact",
		WithFieldValidators("phone", reject),
	)
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSchemaFromOpenAPIUnknownOperation(t *testing.T) {
	if _, err := SchemaFromOpenAPI(context.Background(), loadForms(t), "missing"); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestSchemaFromOpenAPIJSONDocument(t *testing.T) {
	doc := []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "t", "version": "1"},
  "paths": {
    "/signup": {
      "post": {
        "operationId": "signup",
        "requestBody": {"content": {"application/json": {"schema": {
          "type": "object",
          "required": ["age"],
          "properties": {
            "site": {"type": "string", "format": "uri"},
            "age": {"type": "integer"},
            "bio": {"type": "string", "minLength": 10, "description": "About you"}
          }
        }}}},
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`)
	schema, err := SchemaFromOpenAPI(context.Background(), doc, "signup")
	if err != nil {
		t.Fatalf("schema from openapi: %v", err)
	}
	if diff := cmp.Diff([]string{"age", "bio", "site"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	age, _ := schema.Field("age")
	if age.Constraints.Type != TypeNumber || !age.Constraints.Required {
		t.Fatalf("unexpected age constraints %+v", age.Constraints)
	}
	bio, _ := schema.Field("bio")
	if bio.Constraints.MinLength != 10 || bio.HelperText != "About you" {
		t.Fatalf("unexpected bio spec %+v", bio)
	}
	site, _ := schema.Field("site")
	if site.Constraints.Type != TypeURL {
		t.Fatalf("unexpected site type %q", site.Constraints.Type)
	}
}
