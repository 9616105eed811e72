package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"go-inventory-api/internal/apperr"
)

var validate = validator.New()

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

// ValidateStruct runs the struct tags and converts the first failure into a
// typed validation error naming the offending field.
func ValidateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperr.Validation("request", "malformed")
	}
	first := errs[0]
	field := strings.ToLower(first.Field())
	if first.Tag() == "uuid_required" {
		return apperr.Validation(field, "required")
	}
	return apperr.Validation(field, first.Tag())
}
