package service

import (
	"Favour/dao"
	"Favour/dao/cache"
	"Favour/models"
	"Favour/pkg/log"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IStatusService = (*StatusService)(nil)

type IStatusService interface {
	Remove(ctx context.Context, status *models.Status) error
	RemoveMany(ctx context.Context, statuses []*models.Status) error
}

// StatusService deletes statuses together with the favourites that point at
// them. The statuses are marked first, so their counters are left alone
// while the favourites go.
type StatusService struct {
	StatusDAO    *dao.StatusDAO
	StatsDAO     *dao.StatusStatDAO
	FavouriteDAO *dao.FavouriteDAO
	Favourites   *FavouriteService
	Cache        *cache.FavouriteStorage
	Indexer      StatusIndexer
}

// Remove deletes one status.
func (s *StatusService) Remove(ctx context.Context, status *models.Status) error {
	status.MarkForDestruction()
	return s.remove(ctx, []*models.Status{status})
}

// RemoveMany deletes a batch of statuses in one transaction.
func (s *StatusService) RemoveMany(ctx context.Context, statuses []*models.Status) error {
	for _, st := range statuses {
		st.MarkForMassDestruction()
	}
	return s.remove(ctx, statuses)
}

func (s *StatusService) remove(ctx context.Context, statuses []*models.Status) error {
	var (
		removed []*models.Favourite
		targets []CounterTarget
	)
	err := s.StatusDAO.Transaction(ctx, func(tx *gorm.DB) error {
		for _, st := range statuses {
			favs, err := s.FavouriteDAO.WithTx(tx).ListByStatus(ctx, st.ID)
			if err != nil {
				return fmt.Errorf("list favourites of status %d: %w", st.ID, err)
			}
			target := &InMemoryCounterTarget{Status: st, Stats: s.StatsDAO.WithTx(tx)}
			targets = append(targets, target)
			for _, fav := range favs {
				if err := s.Favourites.destroy(ctx, tx, fav, target); err != nil {
					return err
				}
			}
			removed = append(removed, favs...)

			if err := s.StatsDAO.WithTx(tx).DeleteByStatusID(ctx, st.ID); err != nil {
				return fmt.Errorf("delete stat of status %d: %w", st.ID, err)
			}
			if err := s.StatusDAO.WithTx(tx).Delete(ctx, st.ID); err != nil {
				return fmt.Errorf("delete status %d: %w", st.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, target := range targets {
		target.Commit()
	}

	for _, fav := range removed {
		if err := s.Cache.Forget(ctx, fav.AccountID, fav.StatusID); err != nil {
			log.L.Warn("favourite cache forget", zap.Uint64("favourite_id", fav.ID), zap.Error(err))
		}
	}
	ids := make([]uint64, 0, len(statuses))
	for _, st := range statuses {
		ids = append(ids, st.ID)
	}
	s.Indexer.ReindexMany(ctx, ids)

	log.L.Info("statuses removed", zap.Int("statuses", len(statuses)), zap.Int("favourites", len(removed)))
	return nil
}
