package repository

import (
	"context"

	"levefit-companion/internal/domain/model"
)

type ReferralRepository interface {
	// Save creates or updates a referral.
	Save(ctx context.Context, tx Tx, r *model.Referral) error
	// FindByID returns the referral or domain.ErrNotFound.
	FindByID(ctx context.Context, tx Tx, id string) (*model.Referral, error)
	// ListByReferrer returns a user's referrals newest first.
	ListByReferrer(ctx context.Context, tx Tx, referrerID string) ([]*model.Referral, error)
}
