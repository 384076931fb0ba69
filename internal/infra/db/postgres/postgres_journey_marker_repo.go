package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/ports/repository"
)

var _ repository.JourneyMarkerRepository = (*journeyMarkerRepo)(nil)

type journeyMarkerRepo struct {
	pool *pgxpool.Pool
}

func NewJourneyMarkerRepo(pool *pgxpool.Pool) repository.JourneyMarkerRepository {
	return &journeyMarkerRepo{pool: pool}
}

// MarkShown leans on the UNIQUE (user_id, day) constraint: ON CONFLICT DO
// NOTHING leaves zero rows affected when the marker already exists, which is
// exactly the at-most-once answer the scheduler needs.
func (r *journeyMarkerRepo) MarkShown(ctx context.Context, tx repository.Tx, userID string, day int) (bool, error) {
	const q = `
INSERT INTO journey_markers (id, user_id, day)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, day) DO NOTHING;
`
	tag, err := execSQL(ctx, r.pool, tx, q, uuid.NewString(), userID, day)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *journeyMarkerRepo) Seen(ctx context.Context, tx repository.Tx, userID string, day int) (bool, error) {
	const q = `
SELECT EXISTS(
    SELECT 1 FROM journey_markers WHERE user_id = $1 AND day = $2
)`
	row, err := pickRow(ctx, r.pool, tx, q, userID, day)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, domain.ErrReadDatabaseRow
	}
	return exists, nil
}
