// Package repository implements the dual-backend persistence core. Every
// operation runs against whichever engine the storage.Store selected and
// hands back canonical entities; callers never see backend-shaped results.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/supabase-community/postgrest-go"
	"gorm.io/gorm"

	"media-journal/database"
	"media-journal/models"
	"media-journal/storage"
)

const defaultLimit = 100

// Repo is the generic CRUD engine for one entity type over one named table.
// The hosted backend hands back key-mapping records, the local engine model
// instances; both funnel through the normalization routines before leaving.
type Repo[T any] struct {
	store    *storage.Store
	table    string
	logger   *slog.Logger
	recreate func() error
}

func newRepo[T any](store *storage.Store, table string, logger *slog.Logger, recreate func() error) *Repo[T] {
	return &Repo[T]{store: store, table: table, logger: logger, recreate: recreate}
}

// Create inserts one row and returns the normalized entity with its
// server-assigned id. Ephemeral fields such as genres never reach the row.
func (r *Repo[T]) Create(ctx context.Context, rec storage.Record) (*T, error) {
	rec = rec.Without("genres")

	if rc := r.store.Remote(); rc != nil {
		var rows []storage.Record
		if _, err := rc.From(r.table).Insert(rec, false, "", "representation", "").ExecuteTo(&rows); err != nil {
			return nil, storage.NewFault(storage.BackendHosted, "insert", r.table, err)
		}
		if len(rows) == 0 {
			return nil, storage.NewFault(storage.BackendHosted, "insert", r.table, errors.New("empty insert result"))
		}
		return normalizeRecord[T](rows[0])
	}

	row := new(T)
	if err := rec.Decode(row); err != nil {
		return nil, err
	}
	if err := r.store.DB().WithContext(ctx).Create(row).Error; err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "insert", r.table, err)
	}
	return normalizeModel(row), nil
}

// Get returns the entity or storage.ErrNotFound. No partial matches.
func (r *Repo[T]) Get(ctx context.Context, id int64) (*T, error) {
	if rc := r.store.Remote(); rc != nil {
		var rows []storage.Record
		if _, err := rc.From(r.table).Select("*", "", false).Eq("id", formatID(id)).ExecuteTo(&rows); err != nil {
			return nil, storage.NewFault(storage.BackendHosted, "select", r.table, err)
		}
		if len(rows) == 0 {
			return nil, storage.ErrNotFound
		}
		return normalizeRecord[T](rows[0])
	}

	row := new(T)
	err := r.store.DB().WithContext(ctx).First(row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "select", r.table, err)
	}
	return normalizeModel(row), nil
}

// GetMulti returns a page of entities. Filters are equality predicates,
// nil values ignored. Results are ordered by id so repeated calls with no
// intervening writes page identically on both engines.
func (r *Repo[T]) GetMulti(ctx context.Context, skip, limit int, filters map[string]any) ([]*T, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if rc := r.store.Remote(); rc != nil {
		q := rc.From(r.table).Select("*", "", false)
		for field, value := range filters {
			if value == nil {
				continue
			}
			q = q.Eq(field, formatFilter(value))
		}
		// PostgREST ranges are inclusive on both ends; offset+limit has to
		// be translated at this boundary.
		q = q.Order("id", &postgrest.OrderOpts{Ascending: true}).Range(skip, skip+limit-1, "")

		var rows []storage.Record
		if _, err := q.ExecuteTo(&rows); err != nil {
			return nil, storage.NewFault(storage.BackendHosted, "select", r.table, err)
		}
		out := make([]*T, 0, len(rows))
		for _, rec := range rows {
			entity, err := normalizeRecord[T](rec)
			if err != nil {
				return nil, err
			}
			out = append(out, entity)
		}
		return out, nil
	}

	tx := r.store.DB().WithContext(ctx).Model(new(T))
	eq := map[string]any{}
	for field, value := range filters {
		if value == nil {
			continue
		}
		eq[field] = value
	}
	if len(eq) > 0 {
		tx = tx.Where(eq)
	}

	var rows []T
	err := tx.Order("id").Offset(skip).Limit(limit).Find(&rows).Error
	if err != nil {
		// Stored enum values that no longer deserialize mean the schema
		// predates the current definitions. Rebuild it and return an empty
		// page instead of propagating the fault; only empty or corrupt
		// installations ever hit this.
		if isStaleEnumError(err) && r.recreate != nil {
			r.logger.Warn("stale enum value in local store, recreating schema", "table", r.table, "error", err)
			if rerr := r.recreate(); rerr != nil {
				return nil, storage.NewFault(storage.BackendLocal, "recreate", r.table, rerr)
			}
			return []*T{}, nil
		}
		return nil, storage.NewFault(storage.BackendLocal, "select", r.table, err)
	}

	out := make([]*T, 0, len(rows))
	for i := range rows {
		out = append(out, normalizeModel(&rows[i]))
	}
	return out, nil
}

// Update applies only the fields present in changes and returns the updated
// entity, or storage.ErrNotFound when the id matches nothing. An empty
// change set reads the current row back untouched.
func (r *Repo[T]) Update(ctx context.Context, id int64, changes storage.Record) (*T, error) {
	changes = changes.Without("genres")
	if len(changes) == 0 {
		return r.Get(ctx, id)
	}

	if rc := r.store.Remote(); rc != nil {
		var rows []storage.Record
		if _, err := rc.From(r.table).Update(changes, "representation", "").Eq("id", formatID(id)).ExecuteTo(&rows); err != nil {
			return nil, storage.NewFault(storage.BackendHosted, "update", r.table, err)
		}
		if len(rows) == 0 {
			return nil, storage.ErrNotFound
		}
		return normalizeRecord[T](rows[0])
	}

	db := r.store.DB().WithContext(ctx)

	row := new(T)
	err := db.First(row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "select", r.table, err)
	}

	if err := db.Model(row).Updates(map[string]any(changes)).Error; err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "update", r.table, err)
	}
	if err := db.First(row, "id = ?", id).Error; err != nil {
		return nil, storage.NewFault(storage.BackendLocal, "select", r.table, err)
	}
	return normalizeModel(row), nil
}

// Delete removes the row, reporting false when no row matched.
func (r *Repo[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if rc := r.store.Remote(); rc != nil {
		var rows []storage.Record
		if _, err := rc.From(r.table).Delete("representation", "").Eq("id", formatID(id)).ExecuteTo(&rows); err != nil {
			return false, storage.NewFault(storage.BackendHosted, "delete", r.table, err)
		}
		return len(rows) > 0, nil
	}

	res := r.store.DB().WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return false, storage.NewFault(storage.BackendLocal, "delete", r.table, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// isStaleEnumError matches a scan failure caused by a stored enum value
// that is no longer among the defined values. database/sql wraps scanner
// errors, so the sentinel check gets a string fallback.
func isStaleEnumError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, models.ErrInvalidMediaType) ||
		strings.Contains(err.Error(), "invalid media type")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatFilter(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case models.MediaType:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Repositories bundles the entity repositories over one shared store.
type Repositories struct {
	Media *MediaRepository
	Notes *NoteRepository
	Dives *DiveRepository
}

func New(store *storage.Store, db *database.DB, logger *slog.Logger) *Repositories {
	if logger == nil {
		logger = slog.Default()
	}
	var recreate func() error
	if db != nil {
		recreate = db.Recreate
	}
	return &Repositories{
		Media: NewMediaRepository(store, logger, recreate),
		Notes: NewNoteRepository(store, logger, recreate),
		Dives: NewDiveRepository(store, logger, recreate),
	}
}
