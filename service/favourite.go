package service

import (
	"Favour/dao"
	"Favour/dao/cache"
	"Favour/models"
	"Favour/pkg/log"
	"Favour/pkg/metrics"
	"Favour/pkg/snowflake"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const purgeBatchSize = 100

var _ IFavouriteService = (*FavouriteService)(nil)

type IFavouriteService interface {
	Favourite(ctx context.Context, accountID uint64, status *models.Status) (*models.Favourite, error)
	FavouriteByID(ctx context.Context, accountID uint64, statusID uint64) (*models.Favourite, error)
	Unfavourite(ctx context.Context, accountID uint64, statusID uint64) error
	Destroy(ctx context.Context, fav *models.Favourite, status *models.Status) error
	IsFavourited(ctx context.Context, accountID uint64, statusID uint64) (bool, error)
	GetFavouritesCount(ctx context.Context, statusID uint64) (int64, error)
	CheckFavouritesCount(ctx context.Context, statusID uint64) (*CounterCheck, error)
	ListByAccount(ctx context.Context, accountID uint64, page dao.Page) ([]*models.Favourite, error)
	DestroyAllByAccount(ctx context.Context, accountID uint64) (int, error)
}

// FavouriteService runs every favourite write as one transaction:
// normalize, validate uniqueness, persist, adjust the counter. Cache and
// search side effects follow the commit.
type FavouriteService struct {
	AccountDAO      *dao.AccountDAO
	StatusDAO       *dao.StatusDAO
	StatsDAO        *dao.StatusStatDAO
	FavouriteDAO    *dao.FavouriteDAO
	NotificationDAO *dao.NotificationDAO
	Cache           *cache.FavouriteStorage
	Indexer         StatusIndexer
}

// subject is a normalized favourite target: never a reblog.
type subject struct {
	target   CounterTarget
	authorID uint64
}

// Favourite favourites a status the caller already holds. The counter is
// adjusted on the resident object.
func (s *FavouriteService) Favourite(ctx context.Context, accountID uint64, status *models.Status) (*models.Favourite, error) {
	if status == nil {
		return nil, ErrStatusNotFound
	}
	if err := s.ensureAccount(ctx, accountID); err != nil {
		return nil, err
	}

	var (
		fav    *models.Favourite
		target CounterTarget
	)
	err := s.FavouriteDAO.Transaction(ctx, func(tx *gorm.DB) error {
		original, err := s.normalize(ctx, tx, status)
		if err != nil {
			return err
		}
		target = &InMemoryCounterTarget{Status: original, Stats: s.StatsDAO.WithTx(tx)}
		fav, err = s.create(ctx, tx, accountID, subject{target: target, authorID: original.AccountID})
		return err
	})
	if err != nil {
		return nil, err
	}

	target.Commit()
	s.afterCreate(ctx, fav)
	return fav, nil
}

// FavouriteByID favourites a status known only by id. The counter is
// adjusted with a single update against its stat row.
func (s *FavouriteService) FavouriteByID(ctx context.Context, accountID uint64, statusID uint64) (*models.Favourite, error) {
	if err := s.ensureAccount(ctx, accountID); err != nil {
		return nil, err
	}

	var fav *models.Favourite
	err := s.FavouriteDAO.Transaction(ctx, func(tx *gorm.DB) error {
		ref, err := s.resolve(ctx, s.StatusDAO.WithTx(tx), statusID)
		if err != nil {
			return err
		}
		fav, err = s.create(ctx, tx, accountID, subject{
			target:   &DetachedCounterTarget{ID: ref.ID, Stats: s.StatsDAO.WithTx(tx)},
			authorID: ref.AccountID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCreate(ctx, fav)
	return fav, nil
}

// Unfavourite removes the account's favourite of statusID, or of the
// original when statusID is a reblog.
func (s *FavouriteService) Unfavourite(ctx context.Context, accountID uint64, statusID uint64) error {
	ref, err := s.resolve(ctx, s.StatusDAO, statusID)
	if err != nil {
		return err
	}
	fav, err := s.FavouriteDAO.GetByAccountStatus(ctx, accountID, ref.ID)
	if err != nil {
		return fmt.Errorf("find favourite: %w", err)
	}
	if fav == nil {
		return ErrNotFavourited
	}
	return s.Destroy(ctx, fav, nil)
}

// Destroy removes fav and its notification. A nil status takes the detached
// counter path; otherwise status must be the favourited status or a reblog
// of it, and its resident counter is adjusted.
func (s *FavouriteService) Destroy(ctx context.Context, fav *models.Favourite, status *models.Status) error {
	var resident *models.Status
	if status != nil {
		resident = residentFor(status, fav.StatusID)
		if resident == nil {
			return ErrStatusMismatch
		}
	}

	var target CounterTarget
	err := s.FavouriteDAO.Transaction(ctx, func(tx *gorm.DB) error {
		target = &DetachedCounterTarget{ID: fav.StatusID, Stats: s.StatsDAO.WithTx(tx)}
		if resident != nil {
			target = &InMemoryCounterTarget{Status: resident, Stats: s.StatsDAO.WithTx(tx)}
		}
		return s.destroy(ctx, tx, fav, target)
	})
	if err != nil {
		return err
	}

	target.Commit()
	s.afterDestroy(ctx, fav)
	return nil
}

// IsFavourited answers for the original when statusID is a reblog.
func (s *FavouriteService) IsFavourited(ctx context.Context, accountID uint64, statusID uint64) (bool, error) {
	ref, err := s.resolve(ctx, s.StatusDAO, statusID)
	if err != nil {
		return false, err
	}

	hit, favourited, err := s.Cache.Get(ctx, accountID, ref.ID)
	if err != nil {
		log.L.Warn("favourite cache get", zap.Error(err))
	}
	if err == nil && hit {
		return favourited, nil
	}

	favourited, err = s.FavouriteDAO.IsFavourited(ctx, accountID, ref.ID)
	if err != nil {
		return false, err
	}
	if err := s.Cache.Fill(ctx, accountID, ref.ID, favourited); err != nil {
		log.L.Warn("favourite cache fill", zap.Error(err))
	}
	return favourited, nil
}

// GetFavouritesCount reads the stored counter; NULL reads as zero.
func (s *FavouriteService) GetFavouritesCount(ctx context.Context, statusID uint64) (int64, error) {
	stat, err := s.StatsDAO.GetByStatusID(ctx, statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("status %d: %w", statusID, ErrStatMissing)
		}
		return 0, err
	}
	return stat.Favourites(), nil
}

// CounterCheck compares a status's stored counter with its favourite rows.
type CounterCheck struct {
	StatusID uint64
	Stored   int64
	Rows     int64
}

func (c *CounterCheck) Drifted() bool { return c.Stored != c.Rows }

// CheckFavouritesCount reads the counter and counts the rows in one
// transaction, so both come from the same snapshot.
func (s *FavouriteService) CheckFavouritesCount(ctx context.Context, statusID uint64) (*CounterCheck, error) {
	check := &CounterCheck{StatusID: statusID}
	err := s.StatsDAO.Transaction(ctx, func(tx *gorm.DB) error {
		stat, err := s.StatsDAO.WithTx(tx).GetByStatusID(ctx, statusID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("status %d: %w", statusID, ErrStatMissing)
		}
		if err != nil {
			return err
		}
		check.Stored = stat.Favourites()

		check.Rows, err = s.FavouriteDAO.WithTx(tx).CountByStatus(ctx, statusID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if check.Drifted() {
		log.L.Warn("favourites_count drift", zap.Uint64("status_id", statusID),
			zap.Int64("stored", check.Stored), zap.Int64("rows", check.Rows))
	}
	return check, nil
}

func (s *FavouriteService) ListByAccount(ctx context.Context, accountID uint64, page dao.Page) ([]*models.Favourite, error) {
	return s.FavouriteDAO.ListByAccount(ctx, accountID, page)
}

// DestroyAllByAccount removes every favourite of an account, one
// transaction per favourite, each decrementing its status on the detached
// path. It returns how many were removed before any error.
func (s *FavouriteService) DestroyAllByAccount(ctx context.Context, accountID uint64) (int, error) {
	var (
		removed   int
		statusIDs []uint64
		after     uint64
	)
	defer func() {
		if len(statusIDs) == 0 {
			return
		}
		if err := s.Cache.Forget(ctx, accountID, statusIDs...); err != nil {
			log.L.Warn("favourite cache forget", zap.Uint64("account_id", accountID), zap.Error(err))
		}
		s.Indexer.ReindexMany(ctx, statusIDs)
	}()

	for {
		batch, err := s.FavouriteDAO.BatchByAccount(ctx, accountID, after, purgeBatchSize)
		if err != nil {
			return removed, fmt.Errorf("list favourites of account %d: %w", accountID, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, fav := range batch {
			err := s.FavouriteDAO.Transaction(ctx, func(tx *gorm.DB) error {
				return s.destroy(ctx, tx, fav, &DetachedCounterTarget{ID: fav.StatusID, Stats: s.StatsDAO.WithTx(tx)})
			})
			if errors.Is(err, ErrNotFavourited) {
				continue
			}
			if err != nil {
				return removed, err
			}
			removed++
			statusIDs = append(statusIDs, fav.StatusID)
		}
		after = batch[len(batch)-1].ID
	}

	log.L.Info("account favourites purged", zap.Uint64("account_id", accountID), zap.Int("removed", removed))
	return removed, nil
}

// normalize returns the status a favourite of status must reference, loading
// the original when status is a reblog whose original is not resident.
func (s *FavouriteService) normalize(ctx context.Context, tx *gorm.DB, status *models.Status) (*models.Status, error) {
	if !status.IsReblog() {
		return status, nil
	}
	if status.Reblog != nil {
		return status.Reblog, nil
	}
	original, err := s.StatusDAO.WithTx(tx).GetResident(ctx, *status.ReblogOfID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStatusNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reblogged status: %w", err)
	}
	status.Reblog = original
	return original, nil
}

func (s *FavouriteService) resolve(ctx context.Context, statuses *dao.StatusDAO, statusID uint64) (*dao.StatusRef, error) {
	ref, err := statuses.Resolve(ctx, statusID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStatusNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve status %d: %w", statusID, err)
	}
	return ref, nil
}

// create validates uniqueness on the normalized status, persists the row,
// adjusts the counter and notifies the author, all inside tx.
func (s *FavouriteService) create(ctx context.Context, tx *gorm.DB, accountID uint64, sub subject) (*models.Favourite, error) {
	favourites := s.FavouriteDAO.WithTx(tx)
	statusID := sub.target.StatusID()

	exists, err := favourites.IsFavourited(ctx, accountID, statusID)
	if err != nil {
		return nil, fmt.Errorf("check favourite: %w", err)
	}
	if exists {
		return nil, ErrAlreadyFavourited
	}

	fav := &models.Favourite{
		ID:        snowflake.GenID(),
		AccountID: accountID,
		StatusID:  statusID,
	}
	if err := favourites.Create(ctx, fav); err != nil {
		// lost a race with a concurrent favourite of the same pair
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavourited
		}
		return nil, fmt.Errorf("create favourite: %w", err)
	}

	if err := sub.target.Increment(ctx); err != nil {
		return nil, err
	}

	if sub.authorID != accountID {
		n := &models.Notification{
			ID:            snowflake.GenID(),
			AccountID:     sub.authorID,
			FromAccountID: accountID,
			ActivityType:  models.ActivityTypeFavourite,
			ActivityID:    fav.ID,
			Type:          models.NotificationFavourite,
		}
		if err := s.NotificationDAO.WithTx(tx).Create(ctx, n); err != nil {
			return nil, fmt.Errorf("create notification: %w", err)
		}
	}
	return fav, nil
}

// destroy removes the row and its notification, then adjusts the counter.
func (s *FavouriteService) destroy(ctx context.Context, tx *gorm.DB, fav *models.Favourite, target CounterTarget) error {
	if err := s.FavouriteDAO.WithTx(tx).Delete(ctx, fav.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFavourited
		}
		return fmt.Errorf("delete favourite: %w", err)
	}
	if err := s.NotificationDAO.WithTx(tx).DeleteByActivity(ctx, models.ActivityTypeFavourite, fav.ID); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return target.Decrement(ctx)
}

func (s *FavouriteService) afterCreate(ctx context.Context, fav *models.Favourite) {
	metrics.Favourites.WithLabelValues("create").Inc()
	if err := s.Cache.Set(ctx, fav.AccountID, fav.StatusID, true); err != nil {
		log.L.Warn("favourite cache set", zap.Uint64("favourite_id", fav.ID), zap.Error(err))
	}
	s.Indexer.Reindex(ctx, fav.StatusID)
}

func (s *FavouriteService) afterDestroy(ctx context.Context, fav *models.Favourite) {
	metrics.Favourites.WithLabelValues("destroy").Inc()
	if err := s.Cache.Set(ctx, fav.AccountID, fav.StatusID, false); err != nil {
		log.L.Warn("favourite cache set", zap.Uint64("favourite_id", fav.ID), zap.Error(err))
	}
	s.Indexer.Reindex(ctx, fav.StatusID)
}

func (s *FavouriteService) ensureAccount(ctx context.Context, accountID uint64) error {
	exist, err := s.AccountDAO.Exists(ctx, accountID)
	if err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if !exist {
		return ErrAccountNotFound
	}
	return nil
}

// residentFor picks the object holding statusID's counter out of status:
// status itself, or its resident original when status is a reblog.
func residentFor(status *models.Status, statusID uint64) *models.Status {
	if status.ID == statusID {
		return status
	}
	if status.Reblog != nil && status.Reblog.ID == statusID {
		return status.Reblog
	}
	return nil
}
