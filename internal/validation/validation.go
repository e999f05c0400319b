package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"folio/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// report json names, the ones clients actually send
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct validates v and converts validator output into an *apperr.ValidationError.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &apperr.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
