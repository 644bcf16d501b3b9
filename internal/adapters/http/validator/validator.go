// Package validator turns go-playground validation failures into per-field messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
)

type Validator interface {
	// Validate returns field name to message, or nil when v is valid.
	Validate(v any) map[string]string
}

type StructValidator struct {
	validate *govalidator.Validate
}

func New() *StructValidator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	return &StructValidator{validate: v}
}

func (s *StructValidator) Validate(payload any) map[string]string {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors govalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["_"] = "The request is invalid."
		return errs
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = message(fe)
	}

	return errs
}

func message(fe govalidator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field must be equal to %s field.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
