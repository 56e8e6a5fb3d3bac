package testdb

import (
	"Favour/models"
	"testing"

	"gorm.io/gorm"
)

func Int64(v int64) *int64 { return &v }

func Uint64(v uint64) *uint64 { return &v }

// SeedAccount inserts an account row.
func SeedAccount(t testing.TB, db *gorm.DB, id uint64, username string) *models.Account {
	t.Helper()
	acct := &models.Account{ID: id, Username: username}
	if err := db.Create(acct).Error; err != nil {
		t.Fatalf("seed account %d: %v", id, err)
	}
	return acct
}

// SeedStatus inserts a status with a stat row holding favourites, which may
// be nil for a NULL counter.
func SeedStatus(t testing.TB, db *gorm.DB, id, accountID uint64, favourites *int64) *models.Status {
	t.Helper()
	st := &models.Status{
		ID:        id,
		AccountID: accountID,
		Text:      "status",
		Stat:      &models.StatusStat{StatusID: id, FavouritesCount: favourites},
	}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("seed status %d: %v", id, err)
	}
	return st
}

// SeedBareStatus inserts a status without a stat row.
func SeedBareStatus(t testing.TB, db *gorm.DB, id, accountID uint64) *models.Status {
	t.Helper()
	st := &models.Status{ID: id, AccountID: accountID, Text: "status"}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("seed status %d: %v", id, err)
	}
	return st
}

// SeedReblog inserts a reblog of original with its own stat row.
func SeedReblog(t testing.TB, db *gorm.DB, id, accountID, original uint64) *models.Status {
	t.Helper()
	st := &models.Status{
		ID:         id,
		AccountID:  accountID,
		ReblogOfID: Uint64(original),
		Stat:       &models.StatusStat{StatusID: id, FavouritesCount: Int64(0)},
	}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("seed reblog %d: %v", id, err)
	}
	return st
}

// Favourites reads the stored counter for statusID; NULL reads as -1 so
// tests can tell it apart from zero.
func Favourites(t testing.TB, db *gorm.DB, statusID uint64) int64 {
	t.Helper()
	var stat models.StatusStat
	if err := db.Where("status_id = ?", statusID).First(&stat).Error; err != nil {
		t.Fatalf("load stat %d: %v", statusID, err)
	}
	if stat.FavouritesCount == nil {
		return -1
	}
	return *stat.FavouritesCount
}
