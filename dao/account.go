package dao

import (
	"Favour/models"
	"context"

	"gorm.io/gorm"
)

type AccountDAO struct {
	Repo[models.Account]
}

func NewAccountDAO(db *gorm.DB) *AccountDAO {
	return &AccountDAO{Repo: NewRepo[models.Account](db)}
}

func (d *AccountDAO) Exists(ctx context.Context, accountID uint64) (bool, error) {
	return d.IsExist(ctx, "id = ?", accountID)
}
