// Package validator adapts the shared struct validator to echo.
package validator

import (
	"medapp/internal/infra/document"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator
type CustomValidator struct {
	validate *validator.Validate
}

// New returns the echo validator backed by the document validator
func New() *CustomValidator {
	return &CustomValidator{validate: document.Validator()}
}

// Validate implements echo.Validator
func (v *CustomValidator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
