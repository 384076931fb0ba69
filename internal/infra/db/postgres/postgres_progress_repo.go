package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/domain/ports/repository"
)

var _ repository.ProgressRepository = (*progressRepo)(nil)

type progressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) repository.ProgressRepository {
	return &progressRepo{pool: pool}
}

func (r *progressRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Progress, error) {
	const q = `
SELECT user_id, capsule_days, water_streak, total_water_days,
       last_capsule_at, last_water_at, updated_at
  FROM progress WHERE user_id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	var p model.Progress
	err = row.Scan(&p.UserID, &p.CapsuleDays, &p.WaterStreak, &p.TotalWaterDays,
		&p.LastCapsuleAt, &p.LastWaterAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}

func (r *progressRepo) Save(ctx context.Context, tx repository.Tx, p *model.Progress) error {
	const q = `
INSERT INTO progress (user_id, capsule_days, water_streak, total_water_days,
                      last_capsule_at, last_water_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET
  capsule_days = EXCLUDED.capsule_days,
  water_streak = EXCLUDED.water_streak,
  total_water_days = EXCLUDED.total_water_days,
  last_capsule_at = EXCLUDED.last_capsule_at,
  last_water_at = EXCLUDED.last_water_at,
  updated_at = EXCLUDED.updated_at;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		p.UserID, p.CapsuleDays, p.WaterStreak, p.TotalWaterDays,
		p.LastCapsuleAt, p.LastWaterAt, p.UpdatedAt,
	)
	return err
}
