package models

import (
	"time"

	"media-journal/storage"
)

// Note is a free-text journal entry attached to a media item. AISummary is
// populated after creation by the enrichment step and may stay nil if
// generation fails.
type Note struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MediaID   int64     `gorm:"column:media_id;index;not null" json:"media_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    *float64  `json:"rating"`
	Emotion   *string   `json:"emotion"`
	AISummary *string   `gorm:"column:ai_summary;type:text" json:"ai_summary"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Note) TableName() string { return "notes" }

func (n *Note) ApplyDefaults(now time.Time) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = now
	}
}

type NoteCreate struct {
	MediaID int64    `json:"media_id" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Rating  *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Emotion *string  `json:"emotion"`
}

func (in NoteCreate) Record(now time.Time) storage.Record {
	return storage.Record{
		"media_id":   in.MediaID,
		"content":    in.Content,
		"rating":     in.Rating,
		"emotion":    in.Emotion,
		"created_at": now.UTC(),
		"updated_at": now.UTC(),
	}
}

type NoteUpdate struct {
	Content *string  `json:"content"`
	Rating  *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Emotion *string  `json:"emotion"`
}

// Changes returns the fields present in the payload. updated_at moves on
// every mutation.
func (in NoteUpdate) Changes(now time.Time) storage.Record {
	rec := storage.Record{}
	if in.Content != nil {
		rec["content"] = *in.Content
	}
	if in.Rating != nil {
		rec["rating"] = *in.Rating
	}
	if in.Emotion != nil {
		rec["emotion"] = *in.Emotion
	}
	if len(rec) > 0 {
		rec["updated_at"] = now.UTC()
	}
	return rec
}
