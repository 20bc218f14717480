package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"media-journal/models"
	"media-journal/storage"
)

// MediaService handles business logic for media items
type MediaService struct {
	repo   MediaRepository
	logger *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(repo MediaRepository, logger *slog.Logger) *MediaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaService{repo: repo, logger: logger}
}

// Create registers a media item. The row is inserted first; genres from the
// payload are then replayed as tag attachments.
func (ms *MediaService) Create(ctx context.Context, in models.MediaCreate) (*models.Media, error) {
	rec, err := in.Record(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	media, err := ms.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	for _, name := range in.Genres {
		if err := ms.repo.AddGenre(ctx, media.ID, name); err != nil {
			return nil, err
		}
	}
	if len(in.Genres) > 0 {
		genres, err := ms.repo.GenresFor(ctx, media.ID)
		if err != nil {
			return nil, err
		}
		media.Genres = genres
	}
	return media, nil
}

// Get retrieves a media item by id
func (ms *MediaService) Get(ctx context.Context, id int64) (*models.Media, error) {
	media, err := ms.repo.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMediaNotFound
	}
	return media, err
}

// GetByTitle returns the first media item whose title contains the given
// fragment, case-insensitively.
func (ms *MediaService) GetByTitle(ctx context.Context, title string) (*models.Media, error) {
	media, err := ms.repo.GetByTitle(ctx, title)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMediaNotFound
	}
	return media, err
}

// List pages media items, optionally filtered by canonical media type.
func (ms *MediaService) List(ctx context.Context, skip, limit int, mediaType string) ([]*models.Media, error) {
	if limit < 1 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	if mediaType != "" {
		mt, err := models.ParseMediaType(mediaType)
		if err != nil {
			return nil, err
		}
		return ms.repo.GetByMediaType(ctx, mt, skip, limit)
	}
	return ms.repo.GetMulti(ctx, skip, limit, nil)
}

// Update applies a partial update. A genres field in the payload attaches
// every listed name; it never detaches previously attached genres, so the
// operation is add-to-set rather than replace-set.
func (ms *MediaService) Update(ctx context.Context, id int64, in models.MediaUpdate) (*models.Media, error) {
	changes, err := in.Changes()
	if err != nil {
		return nil, err
	}

	media, err := ms.repo.Update(ctx, id, changes)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Genres != nil {
		for _, name := range in.Genres {
			if err := ms.repo.AddGenre(ctx, id, name); err != nil {
				return nil, err
			}
		}
		genres, err := ms.repo.GenresFor(ctx, id)
		if err != nil {
			return nil, err
		}
		media.Genres = genres
	}
	return media, nil
}

// Delete removes a media item and its dependents
func (ms *MediaService) Delete(ctx context.Context, id int64) error {
	deleted, err := ms.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMediaNotFound
	}
	return nil
}
