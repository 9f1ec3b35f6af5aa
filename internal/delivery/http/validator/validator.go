// Package validator wires go-playground/validator as echo's request validator.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"

	domainerrors "chirp/internal/domain/errors"
)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *validatorlib.Validate
}

// New builds the validator used for request DTOs carrying `validate` tags.
func New() *RequestValidator {
	return &RequestValidator{validate: validatorlib.New()}
}

// Validate checks the bound struct and maps failures onto the validation
// error of the taxonomy, with the field errors as details.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
