package utils

import (
	"github.com/go-playground/validator/v10"

	"github.com/gamegalaxy/exchange/apperr"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates an input DTO and maps failures onto the
// Validation kind with a field-by-field message.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		msg := ""
		for i, e := range validationErrors {
			if i > 0 {
				msg += "; "
			}
			msg += formatValidationError(e)
		}
		return apperr.Wrap(apperr.Validation, msg, err)
	}
	return apperr.Wrap(apperr.Validation, "invalid input", err)
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "lte":
		return e.Field() + " must be less than or equal to " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
