package user

import (
	"github.com/go-playground/validator/v10"
)

var (
	rolTag  = "rol"
	rolText = "invalid role"
)

// rolValidation checks that a value is one of the closed Role set.
func rolValidation(fl validator.FieldLevel) bool {
	if rol, ok := fl.Field().Interface().(Role); ok {
		return rol.Valid()
	}
	return Role(fl.Field().String()).Valid()
}
