package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"media-journal/app"
	"media-journal/models"
	"media-journal/services"
	"media-journal/validator"
)

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// CreateMedia registers a new media item
func CreateMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.MediaCreate
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

		media, err := a.Media.Create(c.Context(), req)
		if err != nil {
			return serviceError(c, "Failed to create media", err)
		}

		return created(c, fiber.Map{"media": media})
	}
}

// ListMedia pages media items with optional media_type and title filters.
// A title filter is a substring search resolving to at most one item; no
// match yields an empty list, not an error.
func ListMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)
		mediaType := c.Query("media_type")

		if title := c.Query("title"); title != "" {
			media, err := a.Media.GetByTitle(c.Context(), title)
			if errors.Is(err, services.ErrMediaNotFound) {
				return success(c, fiber.Map{"media": []*models.Media{}, "skip": skip, "limit": limit})
			}
			if err != nil {
				return serviceError(c, "Failed to fetch media", err)
			}
			return success(c, fiber.Map{"media": []*models.Media{media}, "skip": skip, "limit": limit})
		}

		items, err := a.Media.List(c.Context(), skip, limit, mediaType)
		if err != nil {
			return serviceError(c, "Failed to fetch media", err)
		}

		return success(c, fiber.Map{
			"media": items,
			"skip":  skip,
			"limit": limit,
		})
	}
}

// GetMedia retrieves a single media item
func GetMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid media id")
		}

		media, err := a.Media.Get(c.Context(), id)
		if err != nil {
			return serviceError(c, "Failed to fetch media", err)
		}

		return success(c, fiber.Map{"media": media})
	}
}

// UpdateMedia applies a partial update to a media item
func UpdateMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid media id")
		}

		var req models.MediaUpdate
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

		media, err := a.Media.Update(c.Context(), id, req)
		if err != nil {
			return serviceError(c, "Failed to update media", err)
		}

		return success(c, fiber.Map{"media": media})
	}
}

// DeleteMedia removes a media item and everything attached to it
func DeleteMedia(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid media id")
		}

		if err := a.Media.Delete(c.Context(), id); err != nil {
			return serviceError(c, "Failed to delete media", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
