package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ExtensionKey is the vendor extension carrying presentation hints on schemas
// and properties: order (object), label, input, icon, placeholder and
// helperText (property).
const ExtensionKey = "x-form"

var requestMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// OpenAPIOption customises SchemaFromOpenAPI.
type OpenAPIOption func(*openAPIConfig)

type openAPIConfig struct {
	validators map[string][]Validator
	skipCheck  bool
}

// WithFieldValidators attaches custom validators to a derived field.
func WithFieldValidators(name string, validators ...Validator) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		if cfg.validators == nil {
			cfg.validators = make(map[string][]Validator)
		}
		cfg.validators[name] = append(cfg.validators[name], validators...)
	}
}

// WithoutDocumentValidation skips OpenAPI document validation.
func WithoutDocumentValidation() OpenAPIOption {
	return func(cfg *openAPIConfig) {
		cfg.skipCheck = true
	}
}

// SchemaFromOpenAPI derives a form schema from the request body of the
// operation identified by operationID. The document may be JSON or YAML.
func SchemaFromOpenAPI(ctx context.Context, data []byte, operationID string, opts ...OpenAPIOption) (*Schema, error) {
	cfg := &openAPIConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("form: load openapi: %w", err)
	}
	if !cfg.skipCheck {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("form: validate openapi: %w", err)
		}
	}

	op, err := findOperation(doc, operationID)
	if err != nil {
		return nil, err
	}
	body, err := requestSchema(op)
	if err != nil {
		return nil, fmt.Errorf("form: operation %q: %w", operationID, err)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	specs := make([]FieldSpec, 0, len(body.Properties))
	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		spec := fieldFromProperty(name, ref.Value, required[name])
		spec.Validators = cfg.validators[name]
		specs = append(specs, spec)
	}
	for name := range cfg.validators {
		if _, ok := body.Properties[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	return NewSchema(specs...)
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc.Paths == nil {
		return nil, fmt.Errorf("form: operation %q not found", operationID)
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	for _, path := range keys {
		for _, op := range paths[path].Operations() {
			if op != nil && op.OperationID == operationID {
				return op, nil
			}
		}
	}
	return nil, fmt.Errorf("form: operation %q not found", operationID)
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, errors.New("no request body")
	}
	for _, mime := range requestMediaTypes {
		media := op.RequestBody.Value.Content.Get(mime)
		if media == nil || media.Schema == nil || media.Schema.Value == nil {
			continue
		}
		schema := media.Schema.Value
		if !schema.Type.Is(openapi3.TypeObject) && len(schema.Properties) == 0 {
			return nil, errors.New("request body is not an object")
		}
		return schema, nil
	}
	return nil, errors.New("no form compatible request body")
}

func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var order []string
	hints := extension(schema.Extensions)
	if raw, ok := hints["order"].([]any); ok {
		for _, item := range raw {
			name, _ := item.(string)
			if _, exists := schema.Properties[name]; !exists || seen[name] {
				continue
			}
			seen[name] = true
			order = append(order, name)
		}
	}
	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) FieldSpec {
	hints := extension(prop.Extensions)

	spec := FieldSpec{
		Name:        name,
		Label:       firstNonEmpty(stringHint(hints, "label"), prop.Title, name),
		Placeholder: stringHint(hints, "placeholder"),
		HelperText:  firstNonEmpty(stringHint(hints, "helperText"), prop.Description),
		Icon:        stringHint(hints, "icon"),
		Constraints: Constraints{
			Required:  required,
			Type:      inputType(prop, stringHint(hints, "input")),
			Pattern:   prop.Pattern,
			MinLength: int(prop.MinLength),
		},
	}
	if prop.MaxLength != nil {
		spec.Constraints.MaxLength = int(*prop.MaxLength)
	}
	return spec
}

func inputType(prop *openapi3.Schema, hint string) string {
	if hint != "" {
		return hint
	}
	switch strings.ToLower(prop.Format) {
	case "email":
		return TypeEmail
	case "uri", "url":
		return TypeURL
	case "password":
		return TypePassword
	}
	if prop.Type.Is(openapi3.TypeInteger) || prop.Type.Is(openapi3.TypeNumber) {
		return TypeNumber
	}
	return TypeText
}

func extension(ext map[string]any) map[string]any {
	if ext == nil {
		return nil
	}
	hints, _ := ext[ExtensionKey].(map[string]any)
	return hints
}

func stringHint(hints map[string]any, key string) string {
	value, _ := hints[key].(string)
	return strings.TrimSpace(value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
