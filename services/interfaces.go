package services

import (
	"context"

	"media-journal/models"
	"media-journal/storage"
)

// MediaRepository defines the interface for media data access
type MediaRepository interface {
	Create(ctx context.Context, rec storage.Record) (*models.Media, error)
	Get(ctx context.Context, id int64) (*models.Media, error)
	GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.Media, error)
	GetByMediaType(ctx context.Context, mediaType models.MediaType, skip, limit int) ([]*models.Media, error)
	GetByTitle(ctx context.Context, title string) (*models.Media, error)
	Update(ctx context.Context, id int64, changes storage.Record) (*models.Media, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AddGenre(ctx context.Context, mediaID int64, name string) error
	GenresFor(ctx context.Context, mediaID int64) ([]string, error)
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	Create(ctx context.Context, rec storage.Record) (*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.Note, error)
	GetByMediaID(ctx context.Context, mediaID int64, skip, limit int) ([]*models.Note, error)
	Update(ctx context.Context, id int64, changes storage.Record) (*models.Note, error)
	UpdateAISummary(ctx context.Context, noteID int64, summary string) (*models.Note, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DiveRepository defines the interface for dive-session data access
type DiveRepository interface {
	Get(ctx context.Context, id int64) (*models.DeepDiveSession, error)
	GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.DeepDiveSession, error)
	GetByMediaID(ctx context.Context, mediaID int64, skip, limit int) ([]*models.DeepDiveSession, error)
	CreateWithRelatedWorks(ctx context.Context, in models.DeepDiveCreate, answer string, works []models.RelatedWorkInput) (*models.DeepDiveSession, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AIGateway is the generation collaborator consumed by the services.
// Interface for testability - production uses ai.Service
type AIGateway interface {
	Summarize(ctx context.Context, content string) (string, error)
	DeepDive(ctx context.Context, question string, media *models.Media, notes []*models.Note) (string, []models.RelatedWorkInput, error)
}
