package exceptions

import (
	"edulink-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

var customValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"oneof":    "must be one of: %s",
	"datetime": "must be a valid datetime (%s)",
}

var tagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"gt":       true,
	"gte":      true,
	"oneof":    true,
	"datetime": true,
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		tag := firstErr.Tag()
		customMessage, ok := customValidationErrorMessages[tag]
		if !ok {
			customMessage = "is invalid"
		}
		if tagsWithParams[tag] {
			if tag == "oneof" {
				customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(firstErr.Param()), ", "), 1)
			} else {
				customMessage = strings.Replace(customMessage, "%s", firstErr.Param(), 1)
			}
		}
		return fieldName + " " + customMessage
	}
	return constvars.ErrClientCannotProcessRequest
}
