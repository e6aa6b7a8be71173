package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"question": {"type": "string", "maxLength": 10},
		"domain": {"type": "string", "enum": ["activities", "transport"]},
		"filters": {
			"type": "object",
			"properties": {"max_price": {"type": "integer", "minimum": 0}}
		}
	},
	"required": ["question"]
}`

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name          string
		input         map[string]interface{}
		expectValid   bool
		expectField   string
		expectCode    string
	}{
		{
			name:        "valid input",
			input:       map[string]interface{}{"question": "vélo", "domain": "transport"},
			expectValid: true,
		},
		{
			name:        "missing required field",
			input:       map[string]interface{}{"domain": "transport"},
			expectField: "question",
			expectCode:  "REQUIRED_FIELD_MISSING",
		},
		{
			name:        "wrong type",
			input:       map[string]interface{}{"question": 42},
			expectField: "question",
			expectCode:  "INVALID_TYPE",
		},
		{
			name:        "enum violation",
			input:       map[string]interface{}{"question": "x", "domain": "weather"},
			expectField: "domain",
			expectCode:  "INVALID_ENUM_VALUE",
		},
		{
			name:        "nested range violation",
			input:       map[string]interface{}{"question": "x", "filters": map[string]interface{}{"max_price": -5}},
			expectField: "filters.max_price",
			expectCode:  "RANGE_VIOLATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateInput(tt.input, testSchema)
			require.NoError(t, err)

			assert.Equal(t, tt.expectValid, result.Valid)
			if tt.expectValid {
				assert.Empty(t, result.Errors)
				return
			}

			assert.True(t, result.HasErrors(tt.expectField), "errors: %v", result.GetErrorMessages())
			fieldErrs := result.GetErrorsForField(tt.expectField)
			require.NotEmpty(t, fieldErrs)
			assert.Equal(t, tt.expectCode, fieldErrs[0].Code)
		})
	}
}

func TestValidateJSON(t *testing.T) {
	result, err := ValidateJSON([]byte(`{"question": "hello"}`), testSchema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = ValidateJSON([]byte(`{}`), testSchema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"question: question is required"}, result.GetErrorMessages())
}

func TestValidateInput_BrokenSchema(t *testing.T) {
	_, err := ValidateInput(map[string]interface{}{}, `{"type": 12}`)
	assert.Error(t, err)
}
