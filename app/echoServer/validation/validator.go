// Package validation adapts go-playground/validator to echo's Validator
// interface so handlers can rely on e.Validator for bound DTOs.
package validation

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i any) error {
	return v.v.Struct(i)
}
