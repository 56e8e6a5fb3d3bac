package models

import "time"

const (
	ActivityTypeFavourite = "Favourite"
	NotificationFavourite = "favourite"
)

// Notification is polymorphic over its activity; favourites own theirs
// one-to-one through (activity_type, activity_id).
type Notification struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	AccountID     uint64    `gorm:"column:account_id;not null;index" json:"account_id"`
	FromAccountID uint64    `gorm:"column:from_account_id;not null" json:"from_account_id"`
	ActivityType  string    `gorm:"column:activity_type;type:varchar(32);not null;uniqueIndex:uk_activity,priority:1" json:"activity_type"`
	ActivityID    uint64    `gorm:"column:activity_id;not null;uniqueIndex:uk_activity,priority:2" json:"activity_id"`
	Type          string    `gorm:"column:type;type:varchar(32);not null" json:"type"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Notification) TableName() string { return "notifications" }
