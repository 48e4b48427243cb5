// Package validation implements pre-write field validation for request
// payloads. Uniqueness still has a unique-index backstop in the store.
package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"mindstream/internal/models"
)

// emailRe accepts the local@domain.tld shape: word characters optionally
// separated by single dots or dashes, with a 2-3 letter top-level domain.
var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The stock "email" rule is looser than what we want to accept.
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidEmail reports whether the given address matches the accepted shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// Struct validates v against its validate tags and converts the first
// failure into a validation AppError with a readable message.
func Struct(v any) *models.AppError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return models.NewValidationError("Invalid request body")
	}

	return models.NewValidationError(message(errs[0]))
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email_shape":
		return "Please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldName lowercases the leading rune of the struct field name so the
// message matches the JSON key ("ThoughtText" -> "thoughtText").
func fieldName(fe validator.FieldError) string {
	name := fe.StructField()
	if name == "" {
		return "field"
	}
	return string(name[0]|0x20) + name[1:]
}
