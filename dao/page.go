package dao

import "gorm.io/gorm"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 40
)

// Page is a cursor window over id-ordered rows. MaxID and SinceID bound a
// newest-first page; MinID asks for the page directly above MinID, still
// returned newest-first.
type Page struct {
	Limit   int
	MaxID   uint64
	SinceID uint64
	MinID   uint64
}

func (p Page) limit() int {
	switch {
	case p.Limit <= 0:
		return DefaultPageLimit
	case p.Limit > MaxPageLimit:
		return MaxPageLimit
	default:
		return p.Limit
	}
}

// scope applies the window to a query over table column id.
func (p Page) scope(db *gorm.DB) *gorm.DB {
	if p.MaxID > 0 {
		db = db.Where("id < ?", p.MaxID)
	}
	if p.MinID > 0 {
		return db.Where("id > ?", p.MinID).Order("id ASC").Limit(p.limit())
	}
	if p.SinceID > 0 {
		db = db.Where("id > ?", p.SinceID)
	}
	return db.Order("id DESC").Limit(p.limit())
}

// ascending reports whether rows come back oldest-first and need reversing.
func (p Page) ascending() bool { return p.MinID > 0 }
