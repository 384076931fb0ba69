package repository

import (
	"context"

	"levefit-companion/internal/domain/model"
)

type ProgressRepository interface {
	// FindByUserID returns the counters or domain.ErrNotFound for a user who
	// never checked in.
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.Progress, error)
	// Save creates or updates the counters.
	Save(ctx context.Context, tx Tx, p *model.Progress) error
}
