package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/supabase-community/postgrest-go"
	"gorm.io/gorm"

	"media-journal/models"
	"media-journal/storage"
)

// MediaRepository is the media CRUD engine plus the genre relation logic.
// Genres live only in the genres/media_genres tables and are materialized
// onto entities at read time.
type MediaRepository struct {
	*Repo[models.Media]
}

func NewMediaRepository(store *storage.Store, logger *slog.Logger, recreate func() error) *MediaRepository {
	return &MediaRepository{Repo: newRepo[models.Media](store, "media", logger, recreate)}
}

func (r *MediaRepository) Create(ctx context.Context, rec storage.Record) (*models.Media, error) {
	media, err := r.Repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return r.withGenres(ctx, media)
}

func (r *MediaRepository) Get(ctx context.Context, id int64) (*models.Media, error) {
	media, err := r.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.withGenres(ctx, media)
}

func (r *MediaRepository) GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.Media, error) {
	items, err := r.Repo.GetMulti(ctx, skip, limit, filters)
	if err != nil {
		return nil, err
	}
	for _, media := range items {
		if _, err := r.withGenres(ctx, media); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *MediaRepository) Update(ctx context.Context, id int64, changes storage.Record) (*models.Media, error) {
	media, err := r.Repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	return r.withGenres(ctx, media)
}

// GetByMediaType pages media of a single canonical type.
func (r *MediaRepository) GetByMediaType(ctx context.Context, mediaType models.MediaType, skip, limit int) ([]*models.Media, error) {
	return r.GetMulti(ctx, skip, limit, map[string]any{"media_type": mediaType})
}

// GetByTitle returns the first media item whose title contains the given
// fragment, case-insensitively, or storage.ErrNotFound.
func (r *MediaRepository) GetByTitle(ctx context.Context, title string) (*models.Media, error) {
	if rc := r.store.Remote(); rc != nil {
		var rows []storage.Record
		if _, err := rc.From(r.table).Select("*", "", false).Ilike("title", "%"+title+"%").Limit(1, "").ExecuteTo(&rows); err != nil {
			return nil, storage.NewFault(storage.BackendHosted, "select", r.table, err)
		}
		if len(rows) == 0 {
			return nil, storage.ErrNotFound
		}
		media, err := normalizeRecord[models.Media](rows[0])
		if err != nil {
			return nil, err
		}
		return r.withGenres(ctx, media)
	}

	var media models.Media
	err := r.store.DB().WithContext(ctx).
		Where("title LIKE ?", "%"+title+"%").
		Order("id").
		First(&media).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "select", r.table, err)
	}
	return r.withGenres(ctx, normalizeModel(&media))
}

// AddGenre attaches a genre to a media item: get-or-create the tag row by
// exact name, then insert a join row. The lookup-then-insert pair is not
// atomic across backends, so concurrent first use of a name can produce
// duplicate tag rows; a known, accepted limitation. Join rows are never
// deduplicated either, so repeated attachment is at-least-once.
func (r *MediaRepository) AddGenre(ctx context.Context, mediaID int64, name string) error {
	if rc := r.store.Remote(); rc != nil {
		var genres []storage.Record
		if _, err := rc.From("genres").Select("*", "", false).Eq("name", name).ExecuteTo(&genres); err != nil {
			return storage.NewFault(storage.BackendHosted, "select", "genres", err)
		}

		var genreID int64
		if len(genres) > 0 {
			id, ok := genres[0].ID()
			if !ok {
				return storage.NewFault(storage.BackendHosted, "select", "genres", errors.New("genre row without id"))
			}
			genreID = id
		} else {
			var created []storage.Record
			if _, err := rc.From("genres").Insert(storage.Record{"name": name}, false, "", "representation", "").ExecuteTo(&created); err != nil {
				return storage.NewFault(storage.BackendHosted, "insert", "genres", err)
			}
			id, ok := created[0].ID()
			if !ok {
				return storage.NewFault(storage.BackendHosted, "insert", "genres", errors.New("genre row without id"))
			}
			genreID = id
		}

		join := storage.Record{"media_id": mediaID, "genre_id": genreID}
		if _, _, err := rc.From("media_genres").Insert(join, false, "", "minimal", "").Execute(); err != nil {
			return storage.NewFault(storage.BackendHosted, "insert", "media_genres", err)
		}
		return nil
	}

	db := r.store.DB().WithContext(ctx)

	var genre models.Genre
	err := db.Where("name = ?", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		genre = models.Genre{Name: name}
		if err := db.Create(&genre).Error; err != nil {
			return storage.NewFault(storage.BackendLocal, "insert", "genres", err)
		}
	} else if err != nil {
		return storage.NewFault(storage.BackendLocal, "select", "genres", err)
	}

	join := models.MediaGenre{MediaID: mediaID, GenreID: genre.ID}
	if err := db.Create(&join).Error; err != nil {
		return storage.NewFault(storage.BackendLocal, "insert", "media_genres", err)
	}
	return nil
}

// GenresFor derives the genre names for a media item from the join table,
// in attachment order. Duplicate join rows surface as duplicate names.
func (r *MediaRepository) GenresFor(ctx context.Context, mediaID int64) ([]string, error) {
	if rc := r.store.Remote(); rc != nil {
		var joins []storage.Record
		if _, err := rc.From("media_genres").Select("*", "", false).Eq("media_id", formatID(mediaID)).Order("id", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&joins); err != nil {
			return nil, storage.NewFault(storage.BackendHosted, "select", "media_genres", err)
		}

		names := make([]string, 0, len(joins))
		for _, join := range joins {
			genreID, ok := join["genre_id"]
			if !ok || genreID == nil {
				continue
			}
			var genres []storage.Record
			if _, err := rc.From("genres").Select("*", "", false).Eq("id", formatFilter(genreID)).ExecuteTo(&genres); err != nil {
				return nil, storage.NewFault(storage.BackendHosted, "select", "genres", err)
			}
			if len(genres) == 0 {
				continue
			}
			if name, ok := genres[0]["name"].(string); ok {
				names = append(names, name)
			}
		}
		return names, nil
	}

	var names []string
	err := r.store.DB().WithContext(ctx).
		Model(&models.Genre{}).
		Joins("JOIN media_genres ON media_genres.genre_id = genres.id").
		Where("media_genres.media_id = ?", mediaID).
		Order("media_genres.id").
		Pluck("genres.name", &names).Error
	if err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "select", "media_genres", err)
	}
	return names, nil
}

// Delete removes a media item and everything hanging off it: notes, dive
// sessions with their related works, and genre join rows. The hosted
// backend enforces no foreign keys, so the repository performs the cascade
// on both engines. Children go first so a failure mid-cascade leaves the
// parent discoverable.
func (r *MediaRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if rc := r.store.Remote(); rc != nil {
		var sessions []storage.Record
		if _, err := rc.From("deep_dive_sessions").Select("id", "", false).Eq("media_id", formatID(id)).ExecuteTo(&sessions); err != nil {
			return false, storage.NewFault(storage.BackendHosted, "select", "deep_dive_sessions", err)
		}
		for _, sess := range sessions {
			sessID, ok := sess.ID()
			if !ok {
				continue
			}
			if _, _, err := rc.From("related_works").Delete("minimal", "").Eq("deep_dive_session_id", formatID(sessID)).Execute(); err != nil {
				return false, storage.NewFault(storage.BackendHosted, "delete", "related_works", err)
			}
		}
		for _, table := range []string{"deep_dive_sessions", "notes", "media_genres"} {
			if _, _, err := rc.From(table).Delete("minimal", "").Eq("media_id", formatID(id)).Execute(); err != nil {
				return false, storage.NewFault(storage.BackendHosted, "delete", table, err)
			}
		}
		return r.Repo.Delete(ctx, id)
	}

	deleted := false
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sessionIDs []int64
		if err := tx.Model(&models.DeepDiveSession{}).Where("media_id = ?", id).Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Where("deep_dive_session_id IN ?", sessionIDs).Delete(&models.RelatedWork{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("media_id = ?", id).Delete(&models.DeepDiveSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("media_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("media_id = ?", id).Delete(&models.MediaGenre{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Media{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, storage.NewFault(storage.BackendLocal, "delete", r.table, err)
	}
	return deleted, nil
}

// withGenres materializes the derived genre list unless the raw record
// already carried one.
func (r *MediaRepository) withGenres(ctx context.Context, media *models.Media) (*models.Media, error) {
	if media.Genres != nil {
		return media, nil
	}
	names, err := r.GenresFor(ctx, media.ID)
	if err != nil {
		return nil, err
	}
	media.Genres = names
	return media, nil
}
