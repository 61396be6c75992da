// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("asin", validateASIN)
	validate.RegisterValidation("keyword", validateKeyword)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

var asinRegexp = regexp.MustCompile("^[A-Z0-9]{10}$")

func validateASIN(fl validator.FieldLevel) bool {
	return asinRegexp.MatchString(fl.Field().String())
}

func validateKeyword(fl validator.FieldLevel) bool {
	keyword := strings.TrimSpace(fl.Field().String())
	return len(keyword) >= 2 && len(keyword) <= 255
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

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
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "asin":
		return "ASIN must be 10 uppercase letters or digits"
	case "keyword":
		return "Keyword must be between 2 and 255 characters"
	default:
		return e.Field() + " is invalid"
	}
}
