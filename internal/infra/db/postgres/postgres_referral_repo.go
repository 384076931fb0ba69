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

var _ repository.ReferralRepository = (*referralRepo)(nil)

type referralRepo struct {
	pool *pgxpool.Pool
}

func NewReferralRepo(pool *pgxpool.Pool) repository.ReferralRepository {
	return &referralRepo{pool: pool}
}

func (r *referralRepo) Save(ctx context.Context, tx repository.Tx, ref *model.Referral) error {
	const q = `
INSERT INTO referrals (id, referrer_id, referred_email, referred_user_id, referral_code,
                       status, credit_amount, created_at, converted_at, approved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
  referred_user_id = EXCLUDED.referred_user_id,
  status = EXCLUDED.status,
  converted_at = EXCLUDED.converted_at,
  approved_at = EXCLUDED.approved_at;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		ref.ID, ref.ReferrerID, ref.ReferredEmail, ref.ReferredUserID, ref.ReferralCode,
		ref.Status, ref.CreditAmount, ref.CreatedAt, ref.ConvertedAt, ref.ApprovedAt,
	)
	return err
}

func (r *referralRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Referral, error) {
	const q = `
SELECT id, referrer_id, referred_email, referred_user_id, referral_code,
       status, credit_amount, created_at, converted_at, approved_at
  FROM referrals WHERE id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var ref model.Referral
	err = row.Scan(&ref.ID, &ref.ReferrerID, &ref.ReferredEmail, &ref.ReferredUserID, &ref.ReferralCode,
		&ref.Status, &ref.CreditAmount, &ref.CreatedAt, &ref.ConvertedAt, &ref.ApprovedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &ref, nil
}

func (r *referralRepo) ListByReferrer(ctx context.Context, tx repository.Tx, referrerID string) ([]*model.Referral, error) {
	const q = `
SELECT id, referrer_id, referred_email, referred_user_id, referral_code,
       status, credit_amount, created_at, converted_at, approved_at
  FROM referrals
 WHERE referrer_id = $1
 ORDER BY created_at DESC;
`
	rows, err := queryRows(ctx, r.pool, tx, q, referrerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Referral
	for rows.Next() {
		var ref model.Referral
		err := rows.Scan(&ref.ID, &ref.ReferrerID, &ref.ReferredEmail, &ref.ReferredUserID, &ref.ReferralCode,
			&ref.Status, &ref.CreditAmount, &ref.CreatedAt, &ref.ConvertedAt, &ref.ApprovedAt)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &ref)
	}
	return out, rows.Err()
}
