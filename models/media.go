package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"media-journal/storage"
)

// MediaType is the canonical media category. Input is matched
// case-insensitively; the stored and serialized form is always uppercase.
type MediaType string

const (
	MediaTypeMovie MediaType = "MOVIE"
	MediaTypeAnime MediaType = "ANIME"
	MediaTypeBook  MediaType = "BOOK"
	MediaTypeGame  MediaType = "GAME"
	MediaTypeMusic MediaType = "MUSIC"
	MediaTypeOther MediaType = "OTHER"
)

var ErrInvalidMediaType = errors.New("invalid media type")

var mediaTypes = map[string]MediaType{
	"MOVIE": MediaTypeMovie,
	"ANIME": MediaTypeAnime,
	"BOOK":  MediaTypeBook,
	"GAME":  MediaTypeGame,
	"MUSIC": MediaTypeMusic,
	"OTHER": MediaTypeOther,
}

// ParseMediaType canonicalizes a media type string. Unrecognized values are
// rejected before anything reaches a storage engine.
func ParseMediaType(s string) (MediaType, error) {
	mt, ok := mediaTypes[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaType, s)
	}
	return mt, nil
}

func (mt MediaType) String() string {
	return string(mt)
}

func (mt *MediaType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMediaType(s)
	if err != nil {
		return err
	}
	*mt = parsed
	return nil
}

// Scan canonicalizes values read from the local engine. A stored value that
// no longer matches the known set surfaces ErrInvalidMediaType, which the
// repository layer treats as a stale-schema signal.
func (mt *MediaType) Scan(value any) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParseMediaType(v)
		if err != nil {
			return err
		}
		*mt = parsed
		return nil
	case []byte:
		return mt.Scan(string(v))
	default:
		return fmt.Errorf("%w: unsupported column value %T", ErrInvalidMediaType, value)
	}
}

func (mt MediaType) Value() (driver.Value, error) {
	return string(mt), nil
}

// Media is the canonical media item shape both engines normalize to.
// Genres are never stored on the row; they are derived from the
// media_genres join table at read time.
type Media struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null;index" json:"title"`
	MediaType   MediaType `gorm:"column:media_type;type:text;index" json:"media_type"`
	Creator     *string   `json:"creator"`
	ReleaseYear *int      `gorm:"column:release_year" json:"release_year"`
	CoverImage  *string   `gorm:"column:cover_image" json:"cover_image"`
	Description *string   `gorm:"type:text" json:"description"`
	CapturedAt  time.Time `gorm:"column:captured_at" json:"captured_at"`
	Genres      []string  `gorm:"-" json:"genres"`
}

func (Media) TableName() string { return "media" }

// ApplyDefaults fills timestamp fields the backing store left empty. The
// hosted backend does not reliably apply column defaults, so this runs on
// every result before it leaves the repository.
func (m *Media) ApplyDefaults(now time.Time) {
	if m.CapturedAt.IsZero() {
		m.CapturedAt = now
	}
}

// MediaCreate is the payload for registering a media item. Genres ride along
// ephemerally and are replayed as tag-attach operations after the row insert.
type MediaCreate struct {
	Title       string   `json:"title" validate:"required,max=500"`
	MediaType   string   `json:"media_type" validate:"required,mediatype"`
	Creator     *string  `json:"creator"`
	ReleaseYear *int     `json:"release_year" validate:"omitempty,gte=0"`
	CoverImage  *string  `json:"cover_image" validate:"omitempty,url"`
	Description *string  `json:"description"`
	Genres      []string `json:"genres"`
}

// Record builds the row payload for either engine. Genres are deliberately
// not part of the row.
func (in MediaCreate) Record(now time.Time) (storage.Record, error) {
	mt, err := ParseMediaType(in.MediaType)
	if err != nil {
		return nil, err
	}
	return storage.Record{
		"title":        in.Title,
		"media_type":   string(mt),
		"creator":      in.Creator,
		"release_year": in.ReleaseYear,
		"cover_image":  in.CoverImage,
		"description":  in.Description,
		"captured_at":  now.UTC(),
	}, nil
}

// MediaUpdate carries partial-update semantics: only non-nil fields change.
type MediaUpdate struct {
	Title       *string  `json:"title" validate:"omitempty,max=500"`
	MediaType   *string  `json:"media_type" validate:"omitempty,mediatype"`
	Creator     *string  `json:"creator"`
	ReleaseYear *int     `json:"release_year" validate:"omitempty,gte=0"`
	CoverImage  *string  `json:"cover_image" validate:"omitempty,url"`
	Description *string  `json:"description"`
	Genres      []string `json:"genres"`
}

// Changes returns only the fields present in the payload. Genres are handled
// separately as additive tag attachments.
func (in MediaUpdate) Changes() (storage.Record, error) {
	rec := storage.Record{}
	if in.Title != nil {
		rec["title"] = *in.Title
	}
	if in.MediaType != nil {
		mt, err := ParseMediaType(*in.MediaType)
		if err != nil {
			return nil, err
		}
		rec["media_type"] = string(mt)
	}
	if in.Creator != nil {
		rec["creator"] = *in.Creator
	}
	if in.ReleaseYear != nil {
		rec["release_year"] = *in.ReleaseYear
	}
	if in.CoverImage != nil {
		rec["cover_image"] = *in.CoverImage
	}
	if in.Description != nil {
		rec["description"] = *in.Description
	}
	return rec, nil
}
