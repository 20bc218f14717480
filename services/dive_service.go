package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"media-journal/models"
	"media-journal/storage"
)

// notesContextLimit caps how many notes feed the analysis context.
const notesContextLimit = 100

// DiveService orchestrates deep-dive sessions: media validation, context
// gathering, generation, and the parent+children write.
type DiveService struct {
	repo   DiveRepository
	media  MediaRepository
	notes  NoteRepository
	ai     AIGateway
	logger *slog.Logger
}

// NewDiveService creates a new dive service
func NewDiveService(repo DiveRepository, media MediaRepository, notes NoteRepository, ai AIGateway, logger *slog.Logger) *DiveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiveService{repo: repo, media: media, notes: notes, ai: ai, logger: logger}
}

// Create runs a deep dive. The media reference is validated and the answer
// generated before anything is written, so a generation failure leaves no
// session behind.
func (ds *DiveService) Create(ctx context.Context, in models.DeepDiveCreate) (*models.DeepDiveSession, error) {
	media, err := ds.media.Get(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	notes, err := ds.notes.GetByMediaID(ctx, in.MediaID, 0, notesContextLimit)
	if err != nil {
		return nil, err
	}

	answer, works, err := ds.ai.DeepDive(ctx, in.Question, media, notes)
	if err != nil {
		return nil, fmt.Errorf("deep dive generation failed: %w", err)
	}

	return ds.repo.CreateWithRelatedWorks(ctx, in, answer, works)
}

// Get retrieves a session with its related works
func (ds *DiveService) Get(ctx context.Context, id int64) (*models.DeepDiveSession, error) {
	sess, err := ds.repo.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

// List pages sessions, optionally restricted to one media item.
func (ds *DiveService) List(ctx context.Context, skip, limit int, mediaID int64) ([]*models.DeepDiveSession, error) {
	if limit < 1 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	if mediaID != 0 {
		return ds.repo.GetByMediaID(ctx, mediaID, skip, limit)
	}
	return ds.repo.GetMulti(ctx, skip, limit, nil)
}

// Delete removes a session and its related works
func (ds *DiveService) Delete(ctx context.Context, id int64) error {
	deleted, err := ds.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSessionNotFound
	}
	return nil
}
