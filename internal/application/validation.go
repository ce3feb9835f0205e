package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateRange checks that value lies in [min, max].
// Grid dimensions are range-checked here by the front ends, never by the store.
func ValidateRange(fieldName string, value, min, max int) error {
	if err := validate.Var(value, fmt.Sprintf("gte=%d,lte=%d", min, max)); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be between %d and %d, got %d", formatFieldName(fieldName), min, max, value),
		}
	}
	return nil
}

// ValidateStruct runs the struct tag rules and reports the first failure as a ValidationError
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := fe.Namespace()
	if t := reflect.Indirect(reflect.ValueOf(v)).Type(); t.Name() != "" {
		field = strings.TrimPrefix(field, t.Name()+".")
	}
	return &ValidationError{
		Field:   strings.ToLower(field),
		Message: describeTag(fe),
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// formatFieldName converts field names to readable words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"cardID": "card ID",
		"rows":   "rows",
		"cols":   "columns",
		"side":   "side",
		"text":   "text",
		"path":   "path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
