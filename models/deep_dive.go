package models

import (
	"time"

	"media-journal/storage"
)

// DeepDiveSession is a Q&A session against a media item. RelatedWorks are
// its ordered children, created in the same logical step as the parent.
type DeepDiveSession struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MediaID   int64     `gorm:"column:media_id;index;not null" json:"media_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	RelatedWorks []RelatedWork `gorm:"-" json:"related_works"`
}

func (DeepDiveSession) TableName() string { return "deep_dive_sessions" }

func (s *DeepDiveSession) ApplyDefaults(now time.Time) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
}

// RelatedWork is a work the analysis pointed to, owned by its session.
type RelatedWork struct {
	ID                int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	DeepDiveSessionID int64   `gorm:"column:deep_dive_session_id;index;not null" json:"deep_dive_session_id"`
	Title             string  `gorm:"not null" json:"title"`
	Creator           *string `json:"creator"`
	Description       *string `gorm:"type:text" json:"description"`
	URL               *string `gorm:"column:url" json:"url"`
}

func (RelatedWork) TableName() string { return "related_works" }

// RelatedWorkInput is the collaborator-supplied shape for a related work,
// before it is tied to a session.
type RelatedWorkInput struct {
	Title       string  `json:"title"`
	Creator     *string `json:"creator"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

func (in RelatedWorkInput) Record(sessionID int64) storage.Record {
	return storage.Record{
		"deep_dive_session_id": sessionID,
		"title":                in.Title,
		"creator":              in.Creator,
		"description":          in.Description,
		"url":                  in.URL,
	}
}

type DeepDiveCreate struct {
	MediaID  int64  `json:"media_id" validate:"required"`
	Question string `json:"question" validate:"required"`
}

func (in DeepDiveCreate) Record(answer string, now time.Time) storage.Record {
	return storage.Record{
		"media_id":   in.MediaID,
		"question":   in.Question,
		"answer":     answer,
		"created_at": now.UTC(),
	}
}
