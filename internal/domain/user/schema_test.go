package user

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "usuarios-service/pkg/errors"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSchema_Validate_Full(t *testing.T) {
	schema := NewSchema()

	tests := []struct {
		name    string
		payload Patch
		wantErr string
	}{
		{
			name:    "valid record",
			payload: Patch{Name: strPtr("Ana"), Age: intPtr(30)},
		},
		{
			name:    "boundary ages",
			payload: Patch{Name: strPtr("Bob"), Age: intPtr(120)},
		},
		{
			name:    "name too short",
			payload: Patch{Name: strPtr("Al"), Age: intPtr(25)},
			wantErr: "name must be at least 3 characters",
		},
		{
			name:    "empty name is required, not short",
			payload: Patch{Name: strPtr(""), Age: intPtr(25)},
			wantErr: "name is required",
		},
		{
			name:    "age zero",
			payload: Patch{Name: strPtr("Ana"), Age: intPtr(0)},
			wantErr: "age must be at least 1",
		},
		{
			name:    "age above range",
			payload: Patch{Name: strPtr("Ana"), Age: intPtr(121)},
			wantErr: "age must be at most 120",
		},
		{
			name:    "missing fields",
			payload: Patch{},
			wantErr: "name is required, age is required",
		},
		{
			name:    "every violation in declaration order",
			payload: Patch{Name: strPtr("Al"), Age: intPtr(-4)},
			wantErr: "name must be at least 3 characters, age must be at least 1",
		},
		{
			name:    "multibyte name counts characters",
			payload: Patch{Name: strPtr("Íñé"), Age: intPtr(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.payload, Full)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())

			var verrs apperrors.ValidationErrors
			assert.True(t, errors.As(err, &verrs))
		})
	}
}

func TestSchema_Validate_Partial(t *testing.T) {
	schema := NewSchema()

	assert.NoError(t, schema.Validate(Patch{}, Partial))
	assert.NoError(t, schema.Validate(Patch{Age: intPtr(40)}, Partial))

	err := schema.Validate(Patch{Age: intPtr(0)}, Partial)
	require.Error(t, err)
	assert.Equal(t, "age must be at least 1", err.Error())

	err = schema.Validate(Patch{Name: strPtr("Jo")}, Partial)
	require.Error(t, err)
	assert.Equal(t, "name must be at least 3 characters", err.Error())
}

func TestSchema_Decode(t *testing.T) {
	schema := NewSchema()

	tests := []struct {
		name     string
		input    Input
		mode     Mode
		wantName string
		wantAge  int
		wantErr  string
	}{
		{
			name:     "json numbers decode as float64",
			input:    Input{Name: "Ana", Age: float64(30)},
			wantName: "Ana",
			wantAge:  30,
		},
		{
			name:     "json.Number age",
			input:    Input{Name: "Ana", Age: json.Number("40")},
			wantName: "Ana",
			wantAge:  40,
		},
		{
			name:     "numeric string age",
			input:    Input{Name: "Ana", Age: "30"},
			wantName: "Ana",
			wantAge:  30,
		},
		{
			name:     "scalar name kept as text",
			input:    Input{Name: float64(12345), Age: 20},
			wantName: "12345",
			wantAge:  20,
		},
		{
			name:    "wrong age type keeps name violation",
			input:   Input{Name: "Al", Age: "old"},
			wantErr: "name must be at least 3 characters, age must be a number",
		},
		{
			name:    "fractional age",
			input:   Input{Name: "Ana", Age: 30.5},
			wantErr: "age must be an integer",
		},
		{
			name:    "object name",
			input:   Input{Name: map[string]any{"first": "Ana"}, Age: 30},
			wantErr: "name must be a string",
		},
		{
			name:    "boolean age",
			input:   Input{Name: "Ana", Age: true},
			wantErr: "age must be a number",
		},
		{
			name:    "huge age is out of range",
			input:   Input{Name: "Ana", Age: 1e300},
			wantErr: "age must be at most 120",
		},
		{
			name:    "partial mode still reports type errors",
			input:   Input{Age: []any{1}},
			mode:    Partial,
			wantErr: "age must be a number",
		},
		{
			name:    "partial mode skips absent fields",
			input:   Input{Age: float64(7)},
			mode:    Partial,
			wantAge: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := schema.Decode(tt.input, tt.mode)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, patch.IsEmpty())
				return
			}

			require.NoError(t, err)
			if tt.wantName == "" {
				assert.Nil(t, patch.Name)
			} else {
				require.NotNil(t, patch.Name)
				assert.Equal(t, tt.wantName, *patch.Name)
			}
			require.NotNil(t, patch.Age)
			assert.Equal(t, tt.wantAge, *patch.Age)
		})
	}
}

func TestSchema_Rules_DeclarationOrder(t *testing.T) {
	rules := NewSchema().Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "name", rules[0].Field)
	assert.Equal(t, "age", rules[1].Field)
}

func TestPatch_Apply(t *testing.T) {
	u := User{ID: "1", Name: "Ana", Age: 30}

	assert.Equal(t, u, Patch{}.Apply(u))
	assert.True(t, Patch{}.IsEmpty())

	updated := Patch{Age: intPtr(40)}.Apply(u)
	assert.Equal(t, User{ID: "1", Name: "Ana", Age: 40}, updated)
	assert.Equal(t, 30, u.Age)
}
