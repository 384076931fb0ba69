package repository

import (
	"context"
	"time"

	"levefit-companion/internal/domain/model"
)

// AccessCodeRepository is the port for issuing and redeeming access codes.
type AccessCodeRepository interface {
	// Insert creates a new, unused code. A normalized code that already
	// exists fails with domain.ErrCodeAlreadyExists (unique constraint).
	Insert(ctx context.Context, tx Tx, code *model.AccessCode) error

	// FindByCode returns the code row whether or not it has been used, or
	// domain.ErrCodeNotFound.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.AccessCode, error)

	// MarkUsed is the compare-and-set: it flips is_used and records the
	// redeemer only if the row is still unused at write time. Returns false
	// when the condition no longer holds (someone else won the race).
	MarkUsed(ctx context.Context, tx Tx, id, userID string, usedAt time.Time) (bool, error)

	// ListAll returns every code, newest first, for the admin panel.
	ListAll(ctx context.Context, tx Tx) ([]*model.AccessCode, error)
}
