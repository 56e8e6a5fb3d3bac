package models

import "time"

// Favourite is one account's endorsement of one status.
// Unique key: account_id + status_id
type Favourite struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	AccountID uint64    `gorm:"column:account_id;not null;uniqueIndex:uk_account_status,priority:1" json:"account_id"`
	StatusID  uint64    `gorm:"column:status_id;not null;uniqueIndex:uk_account_status,priority:2;index:idx_status" json:"status_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Favourite) TableName() string { return "favourites" }
