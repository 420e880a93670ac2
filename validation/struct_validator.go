package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})

		mustRegister("resource_id", IsResourceID)
		mustRegister("state_address", IsStateAddress)
	})
	return validate
}

func mustRegister(tag string, fn func(string) bool) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && fn(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// FieldError describes the first field of a struct that failed validation.
type FieldError struct {
	// Field is the json name of the field, with an index for slice elements,
	// e.g. batch_ids[2].
	Field string `json:"field"`
	// Tag is the rule that failed.
	Tag string `json:"tag"`
	// Value is the offending value when it is a string, else empty.
	Value string `json:"value,omitempty"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, describeTag(e.Tag))
}

// Struct validates s using its `validate` tags and returns the first failure,
// or nil when s is valid.
func Struct(s any) *FieldError {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return &FieldError{Field: "", Tag: "invalid"}
	}

	e := validationErrors[0]
	fe := &FieldError{Field: fieldPath(e), Tag: e.Tag()}
	if v, ok := e.Value().(string); ok {
		fe.Value = v
	}
	return fe
}

// fieldPath drops the struct name from the namespace: StatusBody.batch_ids[2]
// becomes batch_ids[2].
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "resource_id":
		return fmt.Sprintf("must be %d lowercase hex characters", ResourceIDLength)
	case "state_address":
		return fmt.Sprintf("must be %d lowercase hex characters", StateAddressLength)
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
