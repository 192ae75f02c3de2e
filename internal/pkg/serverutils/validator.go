package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// fiber 400 error with a readable field list.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		fields := make([]string, len(validationErrors))
		for i, fe := range validationErrors {
			fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
		}
		return fiber.NewError(fiber.StatusBadRequest, "validation failed: "+strings.Join(fields, ", "))
	}
	return nil
}
