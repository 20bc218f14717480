package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"media-journal/models"
	"media-journal/services"
	"media-journal/validator"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func validationFailed(c *fiber.Ctx, errs validator.ValidationErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":   "Validation failed",
		"details": errs,
	})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// serviceError maps service-layer failures onto transport statuses:
// missing references to 404, rejected enum values to 400, anything else
// to 500.
func serviceError(c *fiber.Ctx, fallback string, err error) error {
	switch {
	case errors.Is(err, services.ErrMediaNotFound),
		errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, models.ErrInvalidMediaType):
		return badRequest(c, err.Error())
	default:
		return serverErrorWithDetails(c, fallback, err)
	}
}
