package models

import "time"

// Status is a post. A status with ReblogOfID set is a reblog wrapper around the
// original; favourites always point at the original.
type Status struct {
	ID         uint64    `gorm:"column:id;primaryKey" json:"id"`
	AccountID  uint64    `gorm:"column:account_id;not null;index" json:"account_id"`
	ReblogOfID *uint64   `gorm:"column:reblog_of_id;index" json:"reblog_of_id,omitempty"`
	Text       string    `gorm:"column:text;type:text" json:"text"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`

	Reblog *Status     `gorm:"foreignKey:ReblogOfID" json:"reblog,omitempty"`
	Stat   *StatusStat `gorm:"foreignKey:StatusID" json:"stat,omitempty"`

	markedForDestruction     bool
	markedForMassDestruction bool
}

func (Status) TableName() string { return "statuses" }

func (s *Status) IsReblog() bool {
	return s.ReblogOfID != nil && *s.ReblogOfID != 0
}

// MarkForDestruction flags a status that is being removed on its own.
func (s *Status) MarkForDestruction() { s.markedForDestruction = true }

// MarkForMassDestruction flags a status that is removed as part of a batch.
func (s *Status) MarkForMassDestruction() { s.markedForMassDestruction = true }

func (s *Status) MarkedForDestruction() bool { return s.markedForDestruction }

func (s *Status) MarkedForMassDestruction() bool { return s.markedForMassDestruction }

// Removing reports either destruction mark.
func (s *Status) Removing() bool {
	return s.markedForDestruction || s.markedForMassDestruction
}
