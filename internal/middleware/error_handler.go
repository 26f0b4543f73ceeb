package middleware

import (
	"errors"
	"log/slog"

	"brewery/internal/models"
	"brewery/internal/repositories"
	"brewery/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the Fiber error handler shared by both API versions.
// Not-found conditions become an empty 404, bad input a 400 and anything
// unclassified a 500.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErr *validation.Error
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, repositories.ErrBeerNotFound):
			c.Status(fiber.StatusNotFound)
			return nil
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  validationErr.Fields,
			})
		case errors.Is(err, models.ErrInvalidBeerStyle):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid beer style",
				"error":   err.Error(),
			})
		case errors.Is(err, repositories.ErrDuplicateUpc):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Beer with this UPC already exists",
				"error":   err.Error(),
			})
		case errors.As(err, &fiberErr):
			if fiberErr.Code == fiber.StatusNotFound {
				c.Status(fiber.StatusNotFound)
				return nil
			}
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
