package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/supabase-community/postgrest-go"
	"gorm.io/gorm"

	"media-journal/models"
	"media-journal/storage"
)

// DiveRepository manages dive sessions together with their ordered
// related-work children.
type DiveRepository struct {
	*Repo[models.DeepDiveSession]
	works *Repo[models.RelatedWork]
}

func NewDiveRepository(store *storage.Store, logger *slog.Logger, recreate func() error) *DiveRepository {
	return &DiveRepository{
		Repo:  newRepo[models.DeepDiveSession](store, "deep_dive_sessions", logger, recreate),
		works: newRepo[models.RelatedWork](store, "related_works", logger, recreate),
	}
}

func (r *DiveRepository) Get(ctx context.Context, id int64) (*models.DeepDiveSession, error) {
	sess, err := r.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.withRelatedWorks(ctx, sess)
}

func (r *DiveRepository) GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*models.DeepDiveSession, error) {
	sessions, err := r.Repo.GetMulti(ctx, skip, limit, filters)
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if _, err := r.withRelatedWorks(ctx, sess); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// GetByMediaID pages the dive sessions for one media item.
func (r *DiveRepository) GetByMediaID(ctx context.Context, mediaID int64, skip, limit int) ([]*models.DeepDiveSession, error) {
	return r.GetMulti(ctx, skip, limit, map[string]any{"media_id": mediaID})
}

// CreateWithRelatedWorks inserts the session row and then each related work
// keyed to the new session id, in the order given.
//
// On the local engine the whole write is one transaction, so a reader can
// never observe the parent without its children. On the hosted backend the
// parent and each child are separate network calls: a failure partway
// through leaves an orphaned parent with a truncated child list. Known
// reliability gap, surfaced in the returned error rather than repaired.
func (r *DiveRepository) CreateWithRelatedWorks(ctx context.Context, in models.DeepDiveCreate, answer string, works []models.RelatedWorkInput) (*models.DeepDiveSession, error) {
	now := time.Now().UTC()

	if r.store.Remote() != nil {
		sess, err := r.Repo.Create(ctx, in.Record(answer, now))
		if err != nil {
			return nil, err
		}
		sess.RelatedWorks = make([]models.RelatedWork, 0, len(works))
		for i, work := range works {
			child, err := r.works.Create(ctx, work.Record(sess.ID))
			if err != nil {
				return nil, fmt.Errorf("session %d written but related work %d/%d failed: %w", sess.ID, i+1, len(works), err)
			}
			sess.RelatedWorks = append(sess.RelatedWorks, *child)
		}
		return sess, nil
	}

	var sess models.DeepDiveSession
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess = models.DeepDiveSession{
			MediaID:   in.MediaID,
			Question:  in.Question,
			Answer:    answer,
			CreatedAt: now,
		}
		if err := tx.Create(&sess).Error; err != nil {
			return err
		}
		sess.RelatedWorks = make([]models.RelatedWork, 0, len(works))
		for _, work := range works {
			child := models.RelatedWork{
				DeepDiveSessionID: sess.ID,
				Title:             work.Title,
				Creator:           work.Creator,
				Description:       work.Description,
				URL:               work.URL,
			}
			if err := tx.Create(&child).Error; err != nil {
				return err
			}
			sess.RelatedWorks = append(sess.RelatedWorks, child)
		}
		return nil
	})
	if err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "insert", r.table, err)
	}
	return normalizeModel(&sess), nil
}

// Delete removes a session and its related works. The hosted backend
// enforces no foreign keys, so the children are cleared by the repository
// on both engines.
func (r *DiveRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if rc := r.store.Remote(); rc != nil {
		if _, _, err := rc.From("related_works").Delete("minimal", "").Eq("deep_dive_session_id", formatID(id)).Execute(); err != nil {
			return false, storage.NewFault(storage.BackendHosted, "delete", "related_works", err)
		}
		return r.Repo.Delete(ctx, id)
	}

	deleted := false
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deep_dive_session_id = ?", id).Delete(&models.RelatedWork{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.DeepDiveSession{})
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

// RelatedWorksFor returns a session's children in creation order.
func (r *DiveRepository) RelatedWorksFor(ctx context.Context, sessionID int64) ([]models.RelatedWork, error) {
	if rc := r.store.Remote(); rc != nil {
		var rows []storage.Record
		q := rc.From("related_works").Select("*", "", false).
			Eq("deep_dive_session_id", formatID(sessionID)).
			Order("id", &postgrest.OrderOpts{Ascending: true})
		if _, err := q.ExecuteTo(&rows); err != nil {
			return nil, storage.NewFault(storage.BackendHosted, "select", "related_works", err)
		}
		out := make([]models.RelatedWork, 0, len(rows))
		for _, rec := range rows {
			work, err := normalizeRecord[models.RelatedWork](rec)
			if err != nil {
				return nil, err
			}
			out = append(out, *work)
		}
		return out, nil
	}

	var out []models.RelatedWork
	err := r.store.DB().WithContext(ctx).
		Where("deep_dive_session_id = ?", sessionID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "select", "related_works", err)
	}
	return out, nil
}

func (r *DiveRepository) withRelatedWorks(ctx context.Context, sess *models.DeepDiveSession) (*models.DeepDiveSession, error) {
	if sess.RelatedWorks != nil {
		return sess, nil
	}
	works, err := r.RelatedWorksFor(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	sess.RelatedWorks = works
	return sess, nil
}
