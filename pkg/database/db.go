package database

import (
	"Favour/config"
	"Favour/models"
	"Favour/pkg/log"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB opens the MySQL connection. TranslateError turns unique-key
// violations into gorm.ErrDuplicatedKey.
func NewDB(conf *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.L.Error("failed to connect database", zap.Error(err))
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.L.Info("connect database success", zap.String("host", conf.MySQL.Host))
	return db, nil
}

// Migrate creates or updates every table this module owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Status{},
		&models.StatusStat{},
		&models.Favourite{},
		&models.Notification{},
	)
}
