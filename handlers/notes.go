package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"media-journal/app"
	"media-journal/models"
	"media-journal/validator"
)

// CreateNote creates a note for a media item and enriches it with a
// generated summary when possible
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.NoteCreate
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

		note, err := a.Notes.Create(c.Context(), req)
		if err != nil {
			return serviceError(c, "Failed to create note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// ListNotes pages notes with an optional media_id filter
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)
		mediaID := int64(c.QueryInt("media_id", 0))

		notes, err := a.Notes.List(c.Context(), skip, limit, mediaID)
		if err != nil {
			return serviceError(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{
			"notes": notes,
			"skip":  skip,
			"limit": limit,
		})
	}
}

// GetNote retrieves a single note
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid note id")
		}

		note, err := a.Notes.Get(c.Context(), id)
		if err != nil {
			return serviceError(c, "Failed to fetch note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// UpdateNote applies a partial update; changed content refreshes the summary
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid note id")
		}

		var req models.NoteUpdate
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

		note, err := a.Notes.Update(c.Context(), id, req)
		if err != nil {
			return serviceError(c, "Failed to update note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, "Invalid note id")
		}

		if err := a.Notes.Delete(c.Context(), id); err != nil {
			return serviceError(c, "Failed to delete note", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
