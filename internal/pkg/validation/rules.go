package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so API clients can map errors back to inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates obj against its `validate` tags. The returned error wraps
// apperrors.ErrValidationFailed and carries one message per failing field.
func Struct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = formatFieldError(fe)
	}
	return apperrors.NewValidationError(fields)
}

// Errors collects hand-written field checks alongside tag validation.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Merge copies field messages out of a validation error produced by Struct.
func (e Errors) Merge(err error) {
	for field, msg := range apperrors.DetailsOf(err) {
		if s, ok := msg.(string); ok {
			e.Add(field, s)
		}
	}
}

// Err returns nil when no messages were recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return apperrors.NewValidationError(e)
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
