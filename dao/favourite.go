package dao

import (
	"Favour/models"
	"context"
	"slices"

	"gorm.io/gorm"
)

type FavouriteDAO struct {
	Repo[models.Favourite]
}

func NewFavouriteDAO(db *gorm.DB) *FavouriteDAO {
	return &FavouriteDAO{Repo: NewRepo[models.Favourite](db)}
}

func (d *FavouriteDAO) WithTx(tx *gorm.DB) *FavouriteDAO {
	return &FavouriteDAO{Repo: NewRepo[models.Favourite](tx)}
}

func (d *FavouriteDAO) Create(ctx context.Context, fav *models.Favourite) error {
	return d.Db.WithContext(ctx).Create(fav).Error
}

// GetByAccountStatus returns nil, nil when the account has not favourited the status.
func (d *FavouriteDAO) GetByAccountStatus(ctx context.Context, accountID, statusID uint64) (*models.Favourite, error) {
	var item models.Favourite
	err := d.Db.WithContext(ctx).
		Where("account_id = ? AND status_id = ?", accountID, statusID).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (d *FavouriteDAO) IsFavourited(ctx context.Context, accountID, statusID uint64) (bool, error) {
	return d.IsExist(ctx, "account_id = ? AND status_id = ?", accountID, statusID)
}

// Delete removes one favourite row. gorm.ErrRecordNotFound means it was already gone.
func (d *FavouriteDAO) Delete(ctx context.Context, favouriteID uint64) error {
	res := d.Db.WithContext(ctx).Delete(&models.Favourite{}, favouriteID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByAccount pages through an account's favourites, newest first.
func (d *FavouriteDAO) ListByAccount(ctx context.Context, accountID uint64, page Page) ([]*models.Favourite, error) {
	var items []*models.Favourite
	err := d.Db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Scopes(page.scope).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if page.ascending() {
		slices.Reverse(items)
	}
	return items, nil
}

// BatchByAccount returns up to size favourites with id > afterID in id order,
// for walking every favourite of an account.
func (d *FavouriteDAO) BatchByAccount(ctx context.Context, accountID, afterID uint64, size int) ([]*models.Favourite, error) {
	var items []*models.Favourite
	err := d.Db.WithContext(ctx).
		Where("account_id = ? AND id > ?", accountID, afterID).
		Order("id ASC").
		Limit(size).
		Find(&items).Error
	return items, err
}

func (d *FavouriteDAO) ListByStatus(ctx context.Context, statusID uint64) ([]*models.Favourite, error) {
	var items []*models.Favourite
	err := d.Db.WithContext(ctx).
		Where("status_id = ?", statusID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (d *FavouriteDAO) CountByStatus(ctx context.Context, statusID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.Favourite{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count, err
}
