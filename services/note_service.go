package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"media-journal/models"
	"media-journal/storage"
)

// NoteService handles business logic for notes
type NoteService struct {
	repo   NoteRepository
	media  MediaRepository
	ai     AIGateway
	logger *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository, media MediaRepository, ai AIGateway, logger *slog.Logger) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{repo: repo, media: media, ai: ai, logger: logger}
}

// Create validates the media reference, writes the note, then enriches it
// with a generated summary. The enrichment is best-effort: a generation or
// summary-write failure is logged and the note stands without a summary.
func (ns *NoteService) Create(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	if _, err := ns.media.Get(ctx, in.MediaID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	note, err := ns.repo.Create(ctx, in.Record(time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	if in.Content != "" {
		note = ns.enrich(ctx, note, in.Content)
	}
	return note, nil
}

// Get retrieves a note by id
func (ns *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	note, err := ns.repo.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoteNotFound
	}
	return note, err
}

// List pages notes, optionally restricted to one media item.
func (ns *NoteService) List(ctx context.Context, skip, limit int, mediaID int64) ([]*models.Note, error) {
	if limit < 1 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	if mediaID != 0 {
		return ns.repo.GetByMediaID(ctx, mediaID, skip, limit)
	}
	return ns.repo.GetMulti(ctx, skip, limit, nil)
}

// Update applies a partial update; changed content regenerates the summary,
// again best-effort.
func (ns *NoteService) Update(ctx context.Context, id int64, in models.NoteUpdate) (*models.Note, error) {
	note, err := ns.repo.Update(ctx, id, in.Changes(time.Now().UTC()))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Content != nil && *in.Content != "" {
		note = ns.enrich(ctx, note, *in.Content)
	}
	return note, nil
}

// Delete removes a note
func (ns *NoteService) Delete(ctx context.Context, id int64) error {
	deleted, err := ns.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

func (ns *NoteService) enrich(ctx context.Context, note *models.Note, content string) *models.Note {
	summary, err := ns.ai.Summarize(ctx, content)
	if err != nil {
		ns.logger.Warn("summary generation failed", "note_id", note.ID, "error", err)
		return note
	}
	updated, err := ns.repo.UpdateAISummary(ctx, note.ID, summary)
	if err != nil {
		ns.logger.Warn("failed to store note summary", "note_id", note.ID, "error", err)
		return note
	}
	return updated
}
