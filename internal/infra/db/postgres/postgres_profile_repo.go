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

var _ repository.ProfileRepository = (*profileRepo)(nil)

type profileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) repository.ProfileRepository {
	return &profileRepo{pool: pool}
}

func (r *profileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	const q = `
INSERT INTO profiles (user_id, name, kit_type, code_validated, is_admin, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  kit_type = EXCLUDED.kit_type,
  is_admin = EXCLUDED.is_admin,
  code_validated = profiles.code_validated OR EXCLUDED.code_validated;
`
	// code_validated is ORed on conflict so a concurrent redemption can
	// never be undone by a profile save.
	_, err := execSQL(ctx, r.pool, tx, q,
		p.UserID, p.Name, p.KitType, p.CodeValidated, p.IsAdmin, p.CreatedAt,
	)
	return err
}

func (r *profileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	const q = `
SELECT user_id, name, kit_type, code_validated, is_admin, created_at
  FROM profiles WHERE user_id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := row.Scan(&p.UserID, &p.Name, &p.KitType, &p.CodeValidated, &p.IsAdmin, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}

func (r *profileRepo) SetCodeValidated(ctx context.Context, tx repository.Tx, userID string) error {
	const q = `UPDATE profiles SET code_validated = TRUE WHERE user_id = $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) SetKit(ctx context.Context, tx repository.Tx, userID, kitID string) error {
	const q = `UPDATE profiles SET kit_type = $2 WHERE user_id = $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, userID, kitID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) ListValidated(ctx context.Context, tx repository.Tx) ([]*model.Profile, error) {
	const q = `
SELECT user_id, name, kit_type, code_validated, is_admin, created_at
  FROM profiles WHERE code_validated = TRUE;
`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.UserID, &p.Name, &p.KitType, &p.CodeValidated, &p.IsAdmin, &p.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *profileRepo) NamesByUserIDs(ctx context.Context, tx repository.Tx, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}
	const q = `SELECT user_id, name FROM profiles WHERE user_id = ANY($1);`
	rows, err := queryRows(ctx, r.pool, tx, q, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		names[id] = name
	}
	return names, rows.Err()
}
