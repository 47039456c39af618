package serverutils

import (
	"notes-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the struct tags on a request DTO and converts the
// first failure into a validation error the error middleware understands.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return apperror.NewValidation("field '%s' failed on '%s' rule", fe.Field(), fe.Tag())
		}
		return apperror.NewValidation("invalid request payload")
	}
	return nil
}
