package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"media-journal/app"
	"media-journal/models"
	"media-journal/validator"
)

// CreateDeepDive starts a Q&A session: validates the media reference,
// generates the analysis, and stores the session with its related works
func CreateDeepDive(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.DeepDiveCreate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			var vErrs validator.ValidationErrors
			if errors.As(err, &vErrs) {
				return validationFailed(c, vErrs)
			}
			return badRequest(c, err.Error())
		}

		sess, err := a.Dives.Create(c.Context(), req)
		if err != nil {
			return serviceError(c, "Failed to create deep dive session", err)
		}

		return created(c, fiber.Map{"session": sess})
	}
}

// ListDeepDives pages sessions with an optional media_id filter
func ListDeepDives(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)
		mediaID := int64(c.QueryInt("media_id", 0))

		sessions, err := a.Dives.List(c.Context(), skip, limit, mediaID)
		if err != nil {
			return serviceError(c, "Failed to fetch deep dive sessions", err)
		}

		return success(c, fiber.Map{
			"sessions": sessions,
			"skip":     skip,
			"limit":    limit,
		})
	}
}

// GetDeepDive retrieves a session with its related works
func GetDeepDive(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid session id")
		}

		sess, err := a.Dives.Get(c.Context(), id)
		if err != nil {
			return serviceError(c, "Failed to fetch deep dive session", err)
		}

		return success(c, fiber.Map{"session": sess})
	}
}

// DeleteDeepDive removes a session and its related works
func DeleteDeepDive(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid session id")
		}

		if err := a.Dives.Delete(c.Context(), id); err != nil {
			return serviceError(c, "Failed to delete deep dive session", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
