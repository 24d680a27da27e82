package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/baechuer/contactbook/internal/domain"
)

var validate = validator.New()

// Check runs struct tag validation and translates the first violation
// into a domain error. Field names are reported in their JSON form.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidJSON(err)
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "required" {
		return domain.ErrMissingField(field)
	}
	return domain.ErrInvalidField(field, "is invalid")
}
