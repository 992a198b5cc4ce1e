package journal

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"trading-journal-go/internal/repository"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a Trade or Method id does not exist.
var ErrNotFound = repository.ErrNotFound

// ValidationError reports malformed or missing user input. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names as they appear in JSON.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and converts the first failure into a ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return newValidationError(fe.Field(), "is required")
	case "gt":
		return newValidationError(fe.Field(), "must be greater than %s", fe.Param())
	case "oneof":
		return newValidationError(fe.Field(), "must be one of [%s]", fe.Param())
	case "max":
		return newValidationError(fe.Field(), "must be at most %s characters", fe.Param())
	default:
		return newValidationError(fe.Field(), "failed %q validation", fe.Tag())
	}
}
