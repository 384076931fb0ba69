package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.AccessCodeRepository = (*accessCodeRepo)(nil)

const uniqueViolation = "23505"

type accessCodeRepo struct {
	pool *pgxpool.Pool
}

func NewAccessCodeRepo(pool *pgxpool.Pool) repository.AccessCodeRepository {
	return &accessCodeRepo{pool: pool}
}

func (r *accessCodeRepo) Insert(ctx context.Context, tx repository.Tx, code *model.AccessCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}

	const q = `
INSERT INTO access_codes (id, code, is_used, used_by, used_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		code.ID, code.Code, code.IsUsed, code.UsedBy, code.UsedAt, code.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrCodeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *accessCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.AccessCode, error) {
	const q = `
SELECT id, code, is_used, used_by, used_at, created_at
  FROM access_codes
 WHERE code = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}

	var ac model.AccessCode
	err = row.Scan(&ac.ID, &ac.Code, &ac.IsUsed, &ac.UsedBy, &ac.UsedAt, &ac.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &ac, nil
}

// MarkUsed is the compare-and-set at the heart of single-use enforcement:
// the WHERE clause re-checks is_used at write time, so of two concurrent
// redeemers exactly one sees an affected row.
func (r *accessCodeRepo) MarkUsed(ctx context.Context, tx repository.Tx, id, userID string, usedAt time.Time) (bool, error) {
	const q = `
UPDATE access_codes
   SET is_used = TRUE, used_by = $2, used_at = $3
 WHERE id = $1 AND is_used = FALSE;
`
	tag, err := execSQL(ctx, r.pool, tx, q, id, userID, usedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *accessCodeRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.AccessCode, error) {
	const q = `
SELECT id, code, is_used, used_by, used_at, created_at
  FROM access_codes
 ORDER BY created_at DESC;
`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AccessCode
	for rows.Next() {
		var ac model.AccessCode
		if err := rows.Scan(&ac.ID, &ac.Code, &ac.IsUsed, &ac.UsedBy, &ac.UsedAt, &ac.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &ac)
	}
	return out, rows.Err()
}
