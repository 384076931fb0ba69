package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/domain/ports/repository"
	"levefit-companion/internal/infra/logging"
)

// Compile-time check
var _ AccessUseCase = (*accessUC)(nil)

// AccessUseCase enforces the access-code gate: each code grants entry to
// exactly one user, exactly once.
type AccessUseCase interface {
	// Redeem consumes a code for the authenticated user and unlocks their
	// profile. On any failure path no mutation is observable.
	Redeem(ctx context.Context, userID, submittedCode string) (*model.AccessCode, error)
	// Issue creates a new unused code (admin capability; authorization is
	// the web layer's job, not this component's).
	Issue(ctx context.Context, rawCode string) (*model.AccessCode, error)
	// List returns all codes newest first, with redeemer names resolved.
	List(ctx context.Context) ([]*model.AccessCode, error)
	// GenerateCandidateCode produces a candidate 8-char [A-Z0-9] code.
	// Collisions are possible and are caught by Issue's uniqueness check.
	GenerateCandidateCode() string
}

type accessUC struct {
	codes    repository.AccessCodeRepository
	profiles repository.ProfileRepository
	tm       repository.TransactionManager
	timeout  time.Duration
	now      func() time.Time
	log      *zerolog.Logger
}

func NewAccessUseCase(
	codes repository.AccessCodeRepository,
	profiles repository.ProfileRepository,
	tm repository.TransactionManager,
	storeTimeout time.Duration,
	logger *zerolog.Logger,
) *accessUC {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &accessUC{
		codes:    codes,
		profiles: profiles,
		tm:       tm,
		timeout:  storeTimeout,
		now:      time.Now,
		log:      logger,
	}
}

// Redeem runs both writes (code row, profile flag) inside one transaction so
// a failure between them never leaves a consumed code with a locked profile.
// The single-use guarantee itself does not rest on the read: MarkUsed is a
// compare-and-set on is_used, so of two concurrent redeemers exactly one
// wins and the other gets ErrCodeAlreadyUsed.
func (u *accessUC) Redeem(ctx context.Context, userID, submittedCode string) (*model.AccessCode, error) {
	defer logging.TraceDuration(u.log, "AccessUC.Redeem")()

	code := model.NormalizeCode(submittedCode)
	if code == "" {
		return nil, domain.ErrInvalidArgument
	}
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	var redeemed *model.AccessCode
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ac, err := u.codes.FindByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if ac.IsUsed {
			return domain.ErrCodeAlreadyUsed
		}

		now := u.now()
		ok, err := u.codes.MarkUsed(ctx, tx, ac.ID, userID, now)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race between read and conditional write.
			return domain.ErrCodeAlreadyUsed
		}

		if err := u.profiles.SetCodeValidated(ctx, tx, userID); err != nil {
			return err
		}

		ac.IsUsed = true
		ac.UsedBy = &userID
		ac.UsedAt = &now
		redeemed = ac
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	u.log.Info().Str("code_id", redeemed.ID).Str("user_id", userID).Msg("access code redeemed")
	return redeemed, nil
}

func (u *accessUC) Issue(ctx context.Context, rawCode string) (*model.AccessCode, error) {
	defer logging.TraceDuration(u.log, "AccessUC.Issue")()

	ac, err := model.NewAccessCode(rawCode)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.codes.Insert(ctx, repository.NoTX, ac); err != nil {
		return nil, mapStoreError(err)
	}
	u.log.Info().Str("code_id", ac.ID).Msg("access code issued")
	return ac, nil
}

func (u *accessUC) List(ctx context.Context) ([]*model.AccessCode, error) {
	defer logging.TraceDuration(u.log, "AccessUC.List")()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	codes, err := u.codes.ListAll(ctx, repository.NoTX)
	if err != nil {
		return nil, mapStoreError(err)
	}

	var usedBy []string
	for _, c := range codes {
		if c.UsedBy != nil {
			usedBy = append(usedBy, *c.UsedBy)
		}
	}
	names, err := u.profiles.NamesByUserIDs(ctx, repository.NoTX, usedBy)
	if err != nil {
		return nil, mapStoreError(err)
	}
	for _, c := range codes {
		if c.UsedBy != nil {
			c.UserName = names[*c.UsedBy]
		}
	}
	return codes, nil
}
