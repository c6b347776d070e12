package utils

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Sanitize trims surrounding whitespace and escapes HTML-unsafe characters.
// Applied to every free-text field before validation and persistence.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// ValidateStruct runs struct-tag validation and reports the first violation
// only; requests are rejected on the first bad field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return fmt.Errorf("%s", fieldMessage(errs[0]))
	}
	return err
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "invalid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
