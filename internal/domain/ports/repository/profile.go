package repository

import (
	"context"

	"levefit-companion/internal/domain/model"
)

type ProfileRepository interface {
	// Save creates or updates a profile.
	Save(ctx context.Context, tx Tx, p *model.Profile) error
	// FindByUserID returns the profile or domain.ErrNotFound.
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.Profile, error)
	// SetCodeValidated flips the gate flag. The flag is monotonic; there is
	// no call that clears it.
	SetCodeValidated(ctx context.Context, tx Tx, userID string) error
	// SetKit records the onboarding kit choice.
	SetKit(ctx context.Context, tx Tx, userID, kitID string) error
	// ListValidated returns all profiles that passed the code gate.
	ListValidated(ctx context.Context, tx Tx) ([]*model.Profile, error)
	// NamesByUserIDs resolves display names for admin listings.
	NamesByUserIDs(ctx context.Context, tx Tx, userIDs []string) (map[string]string, error)
}
