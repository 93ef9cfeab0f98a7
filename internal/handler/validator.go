package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo.Validator
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fieldErrors converts a validator error into per-field validation errors
func fieldErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, ValidationError{Field: field, Message: "This field is required"})
		case "email":
			out = append(out, ValidationError{Field: field, Message: "Must be a valid email address"})
		case "max":
			out = append(out, ValidationError{Field: field, Message: "Exceeds maximum length"})
		default:
			out = append(out, ValidationError{Field: field, Message: "Invalid value"})
		}
	}
	return out
}
