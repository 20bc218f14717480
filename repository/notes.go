package repository

import (
	"context"
	"log/slog"
	"time"

	"media-journal/models"
	"media-journal/storage"
)

// NoteRepository is the note CRUD engine.
type NoteRepository struct {
	*Repo[models.Note]
}

func NewNoteRepository(store *storage.Store, logger *slog.Logger, recreate func() error) *NoteRepository {
	return &NoteRepository{Repo: newRepo[models.Note](store, "notes", logger, recreate)}
}

// GetByMediaID pages the notes attached to one media item.
func (r *NoteRepository) GetByMediaID(ctx context.Context, mediaID int64, skip, limit int) ([]*models.Note, error) {
	return r.GetMulti(ctx, skip, limit, map[string]any{"media_id": mediaID})
}

// UpdateAISummary stores a generated summary on an existing note.
func (r *NoteRepository) UpdateAISummary(ctx context.Context, noteID int64, summary string) (*models.Note, error) {
	return r.Update(ctx, noteID, storage.Record{
		"ai_summary": summary,
		"updated_at": time.Now().UTC(),
	})
}
