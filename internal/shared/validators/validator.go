package validators

import (
	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// FieldLevel is a type alias for validator.FieldLevel.
type FieldLevel = validator.FieldLevel

// Rule is a named custom validation registered on every validator returned by New.
type Rule struct {
	Tag string
	Fn  func(fl FieldLevel) bool
}

// New creates a new validator instance with the given custom rules registered.
func New(rules ...Rule) (*Validate, error) {
	v := validator.New()
	for _, rule := range rules {
		if err := v.RegisterValidation(rule.Tag, rule.Fn); err != nil {
			return nil, err
		}
	}
	return v, nil
}
