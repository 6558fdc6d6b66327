package user

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "usuarios-service/pkg/errors"
)

// Mode selects how missing fields are treated by the schema.
type Mode int

const (
	// Full requires every field, as on create.
	Full Mode = iota
	// Partial only checks the fields that were supplied, as on update.
	Partial
)

// Input holds field values as decoded from a request body. A nil field was
// absent or null. Numbers may arrive as float64, json.Number or int.
type Input struct {
	Name any
	Age  any
}

// Constraint is a single rule on a field value, expressed as a validator tag.
type Constraint struct {
	Tag     string // validator tag, e.g. "min=3"
	Message string // reported when Tag fails
}

// FieldRule declares the constraints of one field.
// The raw value is cast first; a failed cast reports TypeMessage and skips
// the constraints. Constraints are checked in order and only the first
// failure is reported.
type FieldRule struct {
	Field           string
	RequiredMessage string
	TypeMessage     string
	Constraints     []Constraint

	raw    func(Input) any
	cast   func(any) (any, bool)
	assign func(*Patch, any)
}

// Schema holds the declarative rules for a user record.
type Schema struct {
	validate *validator.Validate
	rules    []FieldRule
}

// NewSchema returns the user record schema.
// Rules are kept in field declaration order: name, then age.
func NewSchema() *Schema {
	validate := validator.New()
	_ = validate.RegisterValidation("whole", isWhole)

	return &Schema{
		validate: validate,
		rules: []FieldRule{
			{
				Field:           "name",
				RequiredMessage: "name is required",
				TypeMessage:     "name must be a string",
				Constraints: []Constraint{
					{Tag: "required", Message: "name is required"},
					{Tag: "min=3", Message: "name must be at least 3 characters"},
				},
				raw:  func(in Input) any { return in.Name },
				cast: castString,
				assign: func(p *Patch, v any) {
					s := v.(string)
					p.Name = &s
				},
			},
			{
				Field:           "age",
				RequiredMessage: "age is required",
				TypeMessage:     "age must be a number",
				Constraints: []Constraint{
					{Tag: "whole", Message: "age must be an integer"},
					{Tag: "gte=1", Message: "age must be at least 1"},
					{Tag: "lte=120", Message: "age must be at most 120"},
				},
				raw:  func(in Input) any { return in.Age },
				cast: castNumber,
				assign: func(p *Patch, v any) {
					n := int(v.(float64))
					p.Age = &n
				},
			},
		},
	}
}

// Rules returns the field rules in declaration order.
func (s *Schema) Rules() []FieldRule {
	return s.rules
}

// Decode casts and checks every field of in. It returns the accepted values
// as a Patch, or every violation as apperrors.ValidationErrors.
func (s *Schema) Decode(in Input, mode Mode) (Patch, error) {
	var (
		patch      Patch
		violations apperrors.ValidationErrors
	)

	for _, rule := range s.rules {
		raw := rule.raw(in)
		if raw == nil {
			if mode == Full {
				violations = append(violations, apperrors.NewValidationError(rule.Field, rule.RequiredMessage))
			}
			continue
		}

		v, ok := rule.cast(raw)
		if !ok {
			violations = append(violations, apperrors.NewValidationError(rule.Field, rule.TypeMessage))
			continue
		}

		failed := false
		for _, c := range rule.Constraints {
			if err := s.validate.Var(v, c.Tag); err != nil {
				violations = append(violations, apperrors.NewValidationError(rule.Field, c.Message))
				failed = true
				break
			}
		}
		if !failed {
			rule.assign(&patch, v)
		}
	}

	if len(violations) > 0 {
		return Patch{}, violations
	}
	return patch, nil
}

// Validate checks already typed values. It returns nil or
// apperrors.ValidationErrors.
func (s *Schema) Validate(p Patch, mode Mode) error {
	var in Input
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Age != nil {
		in.Age = *p.Age
	}
	_, err := s.Decode(in, mode)
	return err
}

// castString accepts strings and stores scalars in their text form.
func castString(v any) (any, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return nil, false
	}
}

// castNumber accepts JSON numbers and numeric strings. The result is a
// float64 so that fractional and out of range values still reach the
// constraints without overflowing.
func castNumber(v any) (any, bool) {
	var f float64
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

// isWhole reports whether a float field holds an integral value.
func isWhole(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return f == math.Trunc(f)
}
