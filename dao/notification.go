package dao

import (
	"Favour/models"
	"context"

	"gorm.io/gorm"
)

type NotificationDAO struct {
	Repo[models.Notification]
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{Repo: NewRepo[models.Notification](db)}
}

func (d *NotificationDAO) WithTx(tx *gorm.DB) *NotificationDAO {
	return &NotificationDAO{Repo: NewRepo[models.Notification](tx)}
}

func (d *NotificationDAO) Create(ctx context.Context, n *models.Notification) error {
	return d.Db.WithContext(ctx).Create(n).Error
}

func (d *NotificationDAO) DeleteByActivity(ctx context.Context, activityType string, activityID uint64) error {
	return d.Db.WithContext(ctx).
		Where("activity_type = ? AND activity_id = ?", activityType, activityID).
		Delete(&models.Notification{}).Error
}
