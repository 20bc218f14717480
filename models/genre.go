package models

// Genre is a tag row, looked up by exact name.
type Genre struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Genre) TableName() string { return "genres" }

// MediaGenre is a join row with no identity beyond the pair it links.
// Nothing deduplicates these; attaching the same genre twice produces two
// rows, and readers see the raw sequence.
type MediaGenre struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MediaID int64 `gorm:"column:media_id;index;not null" json:"media_id"`
	GenreID int64 `gorm:"column:genre_id;index;not null" json:"genre_id"`
}

func (MediaGenre) TableName() string { return "media_genres" }
