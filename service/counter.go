package service

import (
	"Favour/dao"
	"Favour/models"
	"Favour/pkg/metrics"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// CounterTarget keeps one status's favourites_count in step with its
// favourite rows. Each call is one adjustment for one row created or removed,
// made with a single atomic update inside the caller's transaction. Commit is
// called once that transaction has committed.
type CounterTarget interface {
	StatusID() uint64
	Increment(ctx context.Context) error
	Decrement(ctx context.Context) error
	Commit()
}

var (
	_ CounterTarget = (*InMemoryCounterTarget)(nil)
	_ CounterTarget = (*DetachedCounterTarget)(nil)
)

// InMemoryCounterTarget adjusts a status the caller already holds. The row
// is updated atomically and re-read; Commit copies the stored value onto the
// resident object, so a rolled back transaction leaves it untouched.
type InMemoryCounterTarget struct {
	Status *models.Status
	Stats  *dao.StatusStatDAO

	stored *models.StatusStat
}

func (t *InMemoryCounterTarget) StatusID() uint64 { return t.Status.ID }

func (t *InMemoryCounterTarget) Increment(ctx context.Context) error {
	if err := t.Stats.IncrFavouritesCount(ctx, t.Status.ID); err != nil {
		return statErr(t.Status.ID, err)
	}
	return t.reload(ctx, metrics.OpIncrement)
}

// Decrement is skipped when the status itself is on its way out; its stat row
// goes with it.
func (t *InMemoryCounterTarget) Decrement(ctx context.Context) error {
	if t.Status.Removing() {
		metrics.CounterAdjustments.WithLabelValues(metrics.OpSkip, metrics.PathResident).Inc()
		return nil
	}
	if err := t.Stats.DecrFavouritesCount(ctx, t.Status.ID); err != nil {
		return statErr(t.Status.ID, err)
	}
	return t.reload(ctx, metrics.OpDecrement)
}

func (t *InMemoryCounterTarget) reload(ctx context.Context, op string) error {
	stat, err := t.Stats.GetByStatusID(ctx, t.Status.ID)
	if err != nil {
		return statErr(t.Status.ID, err)
	}
	t.stored = stat
	metrics.CounterAdjustments.WithLabelValues(op, metrics.PathResident).Inc()
	return nil
}

func (t *InMemoryCounterTarget) Commit() {
	if t.stored == nil {
		return
	}
	if t.Status.Stat == nil {
		t.Status.Stat = t.stored
	} else {
		t.Status.Stat.FavouritesCount = t.stored.FavouritesCount
	}
	t.stored = nil
}

// DetachedCounterTarget adjusts a status by id with a single atomic update,
// for callers that never loaded it.
type DetachedCounterTarget struct {
	ID    uint64
	Stats *dao.StatusStatDAO
}

func (t *DetachedCounterTarget) StatusID() uint64 { return t.ID }

// Commit is a no-op; nothing resident holds the counter.
func (t *DetachedCounterTarget) Commit() {}

func (t *DetachedCounterTarget) Increment(ctx context.Context) error {
	if err := t.Stats.IncrFavouritesCount(ctx, t.ID); err != nil {
		return statErr(t.ID, err)
	}
	metrics.CounterAdjustments.WithLabelValues(metrics.OpIncrement, metrics.PathDetached).Inc()
	return nil
}

func (t *DetachedCounterTarget) Decrement(ctx context.Context) error {
	if err := t.Stats.DecrFavouritesCount(ctx, t.ID); err != nil {
		return statErr(t.ID, err)
	}
	metrics.CounterAdjustments.WithLabelValues(metrics.OpDecrement, metrics.PathDetached).Inc()
	return nil
}

func statErr(statusID uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrStatMissing
	}
	return fmt.Errorf("adjust favourites_count of status %d: %w", statusID, err)
}
