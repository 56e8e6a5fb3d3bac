package dao

import (
	"Favour/models"
	"context"

	"gorm.io/gorm"
)

type StatusDAO struct {
	Repo[models.Status]
}

func NewStatusDAO(db *gorm.DB) *StatusDAO {
	return &StatusDAO{Repo: NewRepo[models.Status](db)}
}

func (d *StatusDAO) WithTx(tx *gorm.DB) *StatusDAO {
	return &StatusDAO{Repo: NewRepo[models.Status](tx)}
}

// GetResident loads a status with its stat row and, for a reblog, the
// original with its stat row, so the whole graph is resident.
func (d *StatusDAO) GetResident(ctx context.Context, statusID uint64) (*models.Status, error) {
	var status models.Status
	err := d.Db.WithContext(ctx).
		Preload("Stat").
		Preload("Reblog").
		Preload("Reblog.Stat").
		First(&status, statusID).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// StatusRef is the slice of a status the detached path needs.
type StatusRef struct {
	ID         uint64
	AccountID  uint64
	ReblogOfID *uint64
}

// Resolve maps a status id to the status favourites should reference: the
// reblogged original for a reblog, the status itself otherwise. Only ids are
// read, the status is never materialized.
func (d *StatusDAO) Resolve(ctx context.Context, statusID uint64) (*StatusRef, error) {
	ref, err := d.ref(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if ref.ReblogOfID == nil || *ref.ReblogOfID == 0 {
		return ref, nil
	}
	return d.ref(ctx, *ref.ReblogOfID)
}

func (d *StatusDAO) ref(ctx context.Context, statusID uint64) (*StatusRef, error) {
	var ref StatusRef
	err := d.Db.WithContext(ctx).
		Model(&models.Status{}).
		Select("id", "account_id", "reblog_of_id").
		Where("id = ?", statusID).
		Take(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (d *StatusDAO) Delete(ctx context.Context, statusID uint64) error {
	return d.Db.WithContext(ctx).Delete(&models.Status{}, statusID).Error
}
