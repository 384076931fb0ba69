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

// Compile-time check
var _ ProfileUseCase = (*profileUC)(nil)

// ProfileUseCase exposes profile operations used by onboarding and the
// account views.
type ProfileUseCase interface {
	// RegisterOrFetch returns the existing profile or creates one. The
	// creation instant becomes the journey's day-0 anchor.
	RegisterOrFetch(ctx context.Context, userID, name string) (*model.Profile, error)
	Get(ctx context.Context, userID string) (*model.Profile, error)
	// SelectKit records which capsule kit the user bought at onboarding.
	SelectKit(ctx context.Context, userID, kitID string) error
}

type profileUC struct {
	profiles repository.ProfileRepository
	tm       repository.TransactionManager
	timeout  time.Duration
	log      *zerolog.Logger
}

func NewProfileUseCase(profiles repository.ProfileRepository, tm repository.TransactionManager, storeTimeout time.Duration, logger *zerolog.Logger) *profileUC {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &profileUC{profiles: profiles, tm: tm, timeout: storeTimeout, log: logger}
}

func (u *profileUC) RegisterOrFetch(ctx context.Context, userID, name string) (*model.Profile, error) {
	defer logging.TraceDuration(u.log, "ProfileUC.RegisterOrFetch")()

	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	var out *model.Profile
	// The find and the save run as one transaction so a double-submit at
	// signup cannot create two enrollment anchors.
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err := u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		p, err := u.profiles.FindByUserID(ctx, tx, userID)
		if err == nil {
			out = p
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		np, err := model.NewProfile(userID, name)
		if err != nil {
			return err
		}
		if err := u.profiles.Save(ctx, tx, np); err != nil {
			return err
		}
		out = np
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return out, nil
}

func (u *profileUC) Get(ctx context.Context, userID string) (*model.Profile, error) {
	defer logging.TraceDuration(u.log, "ProfileUC.Get")()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.profiles.FindByUserID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return p, nil
}

func (u *profileUC) SelectKit(ctx context.Context, userID, kitID string) error {
	defer logging.TraceDuration(u.log, "ProfileUC.SelectKit")()

	if _, ok := catalog.KitByID(kitID); !ok {
		return domain.ErrInvalidArgument
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	return mapStoreError(u.profiles.SetKit(ctx, repository.NoTX, userID, kitID))
}
