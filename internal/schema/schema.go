package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type SchemaType int

const (
	SchemaTypeHealth SchemaType = iota
	SchemaTypeRecipe
)

func (t SchemaType) String() string {
	switch t {
	case SchemaTypeHealth:
		return "health"
	case SchemaTypeRecipe:
		return "recipe"
	default:
		return "unknown"
	}
}

var ErrSchemaNotFound = errors.New("schema not found")

// Schema holds the compiled response schemas of the backend.
type Schema struct {
	schemas map[SchemaType]*gojsonschema.Schema
}

//go:embed health.json
var healthResponse []byte

//go:embed recipe.json
var recipeResponse []byte

// NewResponseSchema compiles the embedded response schemas.
func NewResponseSchema() (*Schema, error) {
	healthSchema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(healthResponse))
	if err != nil {
		return nil, fmt.Errorf("health schema: %w", err)
	}

	recipeSchema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(recipeResponse))
	if err != nil {
		return nil, fmt.Errorf("recipe schema: %w", err)
	}

	return &Schema{
		schemas: map[SchemaType]*gojsonschema.Schema{
			SchemaTypeHealth: healthSchema,
			SchemaTypeRecipe: recipeSchema,
		},
	}, nil
}

func (s *Schema) Get(schemaType SchemaType) (*gojsonschema.Schema, error) {
	schema, ok := s.schemas[schemaType]
	if !ok {
		return nil, ErrSchemaNotFound
	}

	return schema, nil
}

// Validate validates decoded json data against the schema of the given type.
func (s *Schema) Validate(schemaType SchemaType, data any) (*gojsonschema.Result, error) {
	schema, err := s.Get(schemaType)
	if err != nil {
		return nil, err
	}

	return schema.Validate(gojsonschema.NewGoLoader(data))
}

// Describe joins the validation errors of a result into one line.
func Describe(result *gojsonschema.Result) string {
	if result == nil || result.Valid() {
		return ""
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}

	return strings.Join(msgs, "; ")
}
