package middleware

import (
	"products-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// HandleInputErrors stops the request with 400 when any validation rule
// declared before it failed. Otherwise the request continues untouched.
func HandleInputErrors() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := validation.Errors(c); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": errs,
			})
		}
		return c.Next()
	}
}
