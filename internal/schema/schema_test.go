package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNewResponseSchema(t *testing.T) {
	_, err := NewResponseSchema()
	if err != nil {
		t.Errorf("NewResponseSchema() returned an error: %v", err)
	}
}

func TestValidate_Recipe(t *testing.T) {
	s, err := NewResponseSchema()
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"complete", `{"title":"Dal Tadka","servings":4,"cuisine":"Indian","ingredients":[{"amount":"1","unit":"cup","name":"lentils"}],"steps":["Boil lentils"]}`, true},
		{"numeric amount", `{"title":"Dal","servings":4,"ingredients":[{"amount":1.5,"unit":"cup","name":"lentils"}],"steps":[]}`, true},
		{"missing fields", `{}`, true},
		{"null cuisine", `{"cuisine":null}`, true},
		{"servings string", `{"servings":"four"}`, false},
		{"steps objects", `{"steps":[{"text":"boil"}]}`, false},
		{"ingredients object", `{"ingredients":{"name":"lentils"}}`, false},
		{"not an object", `["Dal Tadka"]`, false},
		{"integral float servings", `{"servings":4.0}`, true},
		{"fractional servings", `{"servings":4.5}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Validate(SchemaTypeRecipe, decode(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid(), Describe(res))
		})
	}
}

func TestValidate_Health(t *testing.T) {
	s, err := NewResponseSchema()
	require.NoError(t, err)

	for _, body := range []string{`{"status":"ok"}`, `{"status":true}`, `"ok"`, `[]`, `null`, `1`} {
		t.Run(body, func(t *testing.T) {
			res, err := s.Validate(SchemaTypeHealth, decode(t, body))
			require.NoError(t, err)
			assert.True(t, res.Valid(), Describe(res))
		})
	}
}

func TestDescribe(t *testing.T) {
	s, err := NewResponseSchema()
	require.NoError(t, err)

	res, err := s.Validate(SchemaTypeRecipe, decode(t, `"Dal Tadka"`))
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.NotEmpty(t, Describe(res))
	assert.Empty(t, Describe(nil))
}

func TestGet_UnknownType(t *testing.T) {
	s, err := NewResponseSchema()
	require.NoError(t, err)

	_, err = s.Get(SchemaType(42))
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}
