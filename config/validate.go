package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/leeforge/rucaptcha/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their configuration key rather than the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs tag validation and then the Validator interface, if
// implemented. Tag failures are returned as an ErrorChain of
// invalid_configuration errors keyed by dotted configuration path.
func ValidateStruct(instance any) error {
	if err := validate.Struct(instance); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.WrapWithType(err, apperrors.ErrorTypeInvalidConfiguration, "validate config")
		}

		chain := apperrors.NewErrorChain()
		for _, fe := range fieldErrs {
			chain.Add(apperrors.NewInvalidConfiguration(configKey(fe.Namespace()), fe.Value(), validationMessage(fe)))
		}
		return chain.Err()
	}

	if v, ok := instance.(Validator); ok {
		return v.Validate()
	}
	return nil
}

// configKey drops the root struct name from a validator namespace.
func configKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "file":
		return "must be an existing file"
	case "dir":
		return "must be an existing directory"
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}
