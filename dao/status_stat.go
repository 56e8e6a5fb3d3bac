package dao

import (
	"Favour/models"
	"context"

	"gorm.io/gorm"
)

const (
	incrFavourites = "COALESCE(favourites_count, 0) + 1"
	decrFavourites = "GREATEST(COALESCE(favourites_count, 0) - 1, 0)"
	// sqlite has no GREATEST; its two-argument MAX is the scalar equivalent.
	decrFavouritesSqlite = "MAX(COALESCE(favourites_count, 0) - 1, 0)"
)

type StatusStatDAO struct {
	Repo[models.StatusStat]
}

func NewStatusStatDAO(db *gorm.DB) *StatusStatDAO {
	return &StatusStatDAO{Repo: NewRepo[models.StatusStat](db)}
}

func (d *StatusStatDAO) WithTx(tx *gorm.DB) *StatusStatDAO {
	return &StatusStatDAO{Repo: NewRepo[models.StatusStat](tx)}
}

// IncrFavouritesCount bumps the counter in one statement; a NULL counter
// counts as zero. gorm.ErrRecordNotFound means no stat row exists.
func (d *StatusStatDAO) IncrFavouritesCount(ctx context.Context, statusID uint64) error {
	return d.adjust(ctx, statusID, incrFavourites)
}

// DecrFavouritesCount lowers the counter in one statement, floored at zero.
func (d *StatusStatDAO) DecrFavouritesCount(ctx context.Context, statusID uint64) error {
	expr := decrFavourites
	if d.Db.Dialector.Name() == "sqlite" {
		expr = decrFavouritesSqlite
	}
	return d.adjust(ctx, statusID, expr)
}

func (d *StatusStatDAO) adjust(ctx context.Context, statusID uint64, expr string) error {
	res := d.Db.WithContext(ctx).
		Model(&models.StatusStat{}).
		Where("status_id = ?", statusID).
		UpdateColumn("favourites_count", gorm.Expr(expr))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *StatusStatDAO) GetByStatusID(ctx context.Context, statusID uint64) (*models.StatusStat, error) {
	var item models.StatusStat
	if err := d.Db.WithContext(ctx).Where("status_id = ?", statusID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *StatusStatDAO) DeleteByStatusID(ctx context.Context, statusID uint64) error {
	return d.Db.WithContext(ctx).Where("status_id = ?", statusID).Delete(&models.StatusStat{}).Error
}
