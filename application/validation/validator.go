// Package validation validates shell configs with go-playground/validator.
package validation

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

var sqlIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ConfigValidator implements ports.ConfigValidator using struct tags.
type ConfigValidator struct {
	validate *validator.Validate
}

var _ ports.ConfigValidator = (*ConfigValidator)(nil)

// NewConfigValidator creates a validator that reports fields by their YAML names.
func NewConfigValidator() *ConfigValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(yamlFieldName)
	// Registration only fails for an empty tag or nil function.
	_ = v.RegisterValidation("sql_identifier", func(fl validator.FieldLevel) bool {
		return sqlIdentifier.MatchString(fl.Field().String())
	})
	return &ConfigValidator{validate: v}
}

// Validate checks cfg against its struct tags. Rule violations are reported
// in the result; only an unusable input returns an error.
func (c *ConfigValidator) Validate(cfg *entities.ShellConfig) (*entities.ValidationResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	result := &entities.ValidationResult{Valid: true}
	err := c.validate.Struct(cfg)
	if err == nil {
		return result, nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	result.Valid = false
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, entities.ValidationError{
			Field:   fieldPath(fe),
			Message: ruleMessage(fe),
		})
	}
	return result, nil
}

func yamlFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "sql_identifier":
		return "must be a SQL identifier (letters, digits, underscores)"
	default:
		return fmt.Sprintf("failed on '%s' rule", fe.Tag())
	}
}
