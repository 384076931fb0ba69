package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"levefit-companion/internal/catalog"
	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/domain/ports/repository"
	"levefit-companion/internal/infra/logging"
)

var _ ProgressUseCase = (*progressUC)(nil)

// ProgressUseCase covers the daily check-ins (capsule taken, water goal met)
// and the achievements derived from them.
type ProgressUseCase interface {
	// LogCapsule records today's capsule. Logging twice on the same calendar
	// day is a no-op; the counters move at most once per day.
	LogCapsule(ctx context.Context, userID string, now time.Time) (*model.Progress, error)
	// LogWater records today's water goal. Consecutive days extend the
	// streak, a gap resets it to 1.
	LogWater(ctx context.Context, userID string, now time.Time) (*model.Progress, error)
	Get(ctx context.Context, userID string) (*model.Progress, error)
	// Achievements evaluates the static definitions against the user's
	// counters.
	Achievements(ctx context.Context, userID string) ([]model.AchievementStatus, error)
}

type progressUC struct {
	progress repository.ProgressRepository
	tm       repository.TransactionManager
	loc      *time.Location
	timeout  time.Duration
	log      *zerolog.Logger
}

func NewProgressUseCase(
	progress repository.ProgressRepository,
	tm repository.TransactionManager,
	loc *time.Location,
	storeTimeout time.Duration,
	logger *zerolog.Logger,
) *progressUC {
	if loc == nil {
		loc = time.UTC
	}
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &progressUC{progress: progress, tm: tm, loc: loc, timeout: storeTimeout, log: logger}
}

func (u *progressUC) LogCapsule(ctx context.Context, userID string, now time.Time) (*model.Progress, error) {
	defer logging.TraceDuration(u.log, "ProgressUC.LogCapsule")()

	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	var out *model.Progress
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		p, err := u.loadOrInit(ctx, tx, userID)
		if err != nil {
			return err
		}
		if p.LastCapsuleAt != nil && sameDay(*p.LastCapsuleAt, now, u.loc) {
			out = p
			return nil
		}
		p.CapsuleDays++
		t := now
		p.LastCapsuleAt = &t
		p.UpdatedAt = now
		if err := u.progress.Save(ctx, tx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return out, nil
}

func (u *progressUC) LogWater(ctx context.Context, userID string, now time.Time) (*model.Progress, error) {
	defer logging.TraceDuration(u.log, "ProgressUC.LogWater")()

	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	var out *model.Progress
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		p, err := u.loadOrInit(ctx, tx, userID)
		if err != nil {
			return err
		}
		if p.LastWaterAt != nil && sameDay(*p.LastWaterAt, now, u.loc) {
			out = p
			return nil
		}
		if p.LastWaterAt != nil && sameDay(*p.LastWaterAt, now.AddDate(0, 0, -1), u.loc) {
			p.WaterStreak++
		} else {
			p.WaterStreak = 1
		}
		p.TotalWaterDays++
		t := now
		p.LastWaterAt = &t
		p.UpdatedAt = now
		if err := u.progress.Save(ctx, tx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return out, nil
}

func (u *progressUC) Get(ctx context.Context, userID string) (*model.Progress, error) {
	defer logging.TraceDuration(u.log, "ProgressUC.Get")()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.progress.FindByUserID(ctx, repository.NoTX, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return model.NewProgress(userID), nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return p, nil
}

func (u *progressUC) Achievements(ctx context.Context, userID string) ([]model.AchievementStatus, error) {
	defer logging.TraceDuration(u.log, "ProgressUC.Achievements")()

	p, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	defs := catalog.Achievements()
	out := make([]model.AchievementStatus, 0, len(defs))
	for _, def := range defs {
		var current int
		switch def.Metric {
		case catalog.MetricCapsuleDays:
			current = p.CapsuleDays
		case catalog.MetricWaterDays:
			current = p.TotalWaterDays
		case catalog.MetricWaterStreak:
			current = p.WaterStreak
		}
		shown := current
		if shown > def.Threshold {
			shown = def.Threshold
		}
		out = append(out, model.AchievementStatus{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Unlocked:    current >= def.Threshold,
			Progress:    shown,
			Total:       def.Threshold,
		})
	}
	return out, nil
}

func (u *progressUC) loadOrInit(ctx context.Context, tx repository.Tx, userID string) (*model.Progress, error) {
	p, err := u.progress.FindByUserID(ctx, tx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return model.NewProgress(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return midnightOf(a.In(loc)).Equal(midnightOf(b.In(loc)))
}
