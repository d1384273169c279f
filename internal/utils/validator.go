// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dzfactories/backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("wilaya", validateWilaya)
	validate.RegisterValidation("sector", validateSector)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateWilaya(fl validator.FieldLevel) bool {
	return models.IsValidWilaya(fl.Field().String())
}

func validateSector(fl validator.FieldLevel) bool {
	return models.IsValidCategory(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// GetValidationErrors converts validator output into one entry per failing
// field so the client sees every violation, not just the first.
func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "wilaya":
		return "Unknown wilaya"
	case "sector":
		return "Unknown industrial sector"
	case "url":
		return "Invalid URL format"
	default:
		return e.Field() + " is invalid"
	}
}
