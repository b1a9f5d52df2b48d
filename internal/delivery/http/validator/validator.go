// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"termtalk/internal/errors"

	playgroundValidator "github.com/go-playground/validator/v10"
)

type customValidator struct {
	validate *playgroundValidator.Validate
}

// New creates an echo-compatible request validator.
func New() *customValidator {
	return &customValidator{
		validate: playgroundValidator.New(playgroundValidator.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags on bound request payloads.
func (v *customValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
