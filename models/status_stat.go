package models

import "time"

// StatusStat holds the denormalized counters, one row per status, owned by status creation.
// FavouritesCount is nullable; NULL reads as zero.
type StatusStat struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StatusID        uint64    `gorm:"column:status_id;not null;uniqueIndex" json:"status_id"`
	FavouritesCount *int64    `gorm:"column:favourites_count" json:"favourites_count"`
	ReblogsCount    int64     `gorm:"column:reblogs_count;not null;default:0" json:"reblogs_count"`
	RepliesCount    int64     `gorm:"column:replies_count;not null;default:0" json:"replies_count"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (StatusStat) TableName() string { return "status_stats" }

func (s *StatusStat) Favourites() int64 {
	if s == nil || s.FavouritesCount == nil {
		return 0
	}
	return *s.FavouritesCount
}
