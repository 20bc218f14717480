package app

import (
	"log/slog"

	"media-journal/services"
	"media-journal/storage"
	"media-journal/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Media     *services.MediaService
	Notes     *services.NoteService
	Dives     *services.DiveService
	Store     *storage.Store
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(media *services.MediaService, notes *services.NoteService, dives *services.DiveService, store *storage.Store, logger *slog.Logger) *App {
	return &App{
		Media:     media,
		Notes:     notes,
		Dives:     dives,
		Store:     store,
		Validator: validator.New(),
		Logger:    logger,
	}
}
