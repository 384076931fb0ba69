package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/domain/ports/repository"
	"levefit-companion/internal/infra/logging"
)

// DefaultReferralCredit is the credit granted per approved referral, in
// centavos (R$ 50,00).
const DefaultReferralCredit int64 = 5000

var _ WalletUseCase = (*walletUC)(nil)

// WalletOverview is the aggregate the wallet screen renders.
type WalletOverview struct {
	Wallet       *model.Wallet
	Transactions []*model.WalletTransaction
	Referrals    []*model.Referral
	Pending      int
	Converted    int
	Approved     int
	ReferralCode string
	ReferralLink string
}

type WalletUseCase interface {
	// GetOrCreate returns the user's wallet, creating an empty one on first
	// access.
	GetOrCreate(ctx context.Context, userID string) (*model.Wallet, error)
	// Overview bundles wallet, ledger and referral standing for one user.
	Overview(ctx context.Context, userID string) (*WalletOverview, error)
	// InviteByEmail registers a pending referral for the given address.
	InviteByEmail(ctx context.Context, userID, email string) (*model.Referral, error)
	// ApproveReferral marks a referral approved and credits the referrer's
	// wallet in the same transaction.
	ApproveReferral(ctx context.Context, referralID string, now time.Time) error
}

type walletUC struct {
	wallets   repository.WalletRepository
	referrals repository.ReferralRepository
	tm        repository.TransactionManager
	linkBase  string
	timeout   time.Duration
	log       *zerolog.Logger

	// Concurrent admin requests share this reader, so it must be the
	// locked variant; MonotonicEntropy alone is not goroutine safe.
	entropy *ulid.LockedMonotonicReader
}

func NewWalletUseCase(
	wallets repository.WalletRepository,
	referrals repository.ReferralRepository,
	tm repository.TransactionManager,
	referralLinkBase string,
	storeTimeout time.Duration,
	logger *zerolog.Logger,
) *walletUC {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &walletUC{
		wallets:   wallets,
		referrals: referrals,
		tm:        tm,
		linkBase:  referralLinkBase,
		timeout:   storeTimeout,
		log:       logger,
		entropy: &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		},
	}
}

func (u *walletUC) GetOrCreate(ctx context.Context, userID string) (*model.Wallet, error) {
	defer logging.TraceDuration(u.log, "WalletUC.GetOrCreate")()

	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	var out *model.Wallet
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		w, err := u.wallets.FindByUserID(ctx, tx, userID)
		if err == nil {
			out = w
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		nw, err := model.NewWallet(userID)
		if err != nil {
			return err
		}
		if err := u.wallets.Save(ctx, tx, nw); err != nil {
			return err
		}
		out = nw
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return out, nil
}

func (u *walletUC) Overview(ctx context.Context, userID string) (*WalletOverview, error) {
	defer logging.TraceDuration(u.log, "WalletUC.Overview")()

	w, err := u.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	txs, err := u.wallets.ListTransactions(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	refs, err := u.referrals.ListByReferrer(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	ov := &WalletOverview{
		Wallet:       w,
		Transactions: txs,
		Referrals:    refs,
		ReferralCode: model.ReferralCodeFor(userID),
		ReferralLink: model.ReferralLinkFor(u.linkBase, userID),
	}
	for _, r := range refs {
		switch r.Status {
		case model.ReferralPending:
			ov.Pending++
		case model.ReferralConverted:
			ov.Converted++
		case model.ReferralApproved:
			ov.Approved++
		}
	}
	return ov, nil
}

func (u *walletUC) InviteByEmail(ctx context.Context, userID, email string) (*model.Referral, error) {
	defer logging.TraceDuration(u.log, "WalletUC.InviteByEmail")()

	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if email == "" {
		return nil, domain.ErrInvalidArgument
	}

	r, err := model.NewReferral(userID, email, DefaultReferralCredit)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.referrals.Save(ctx, repository.NoTX, r); err != nil {
		return nil, mapStoreError(err)
	}
	return r, nil
}

func (u *walletUC) ApproveReferral(ctx context.Context, referralID string, now time.Time) error {
	defer logging.TraceDuration(u.log, "WalletUC.ApproveReferral")()

	if referralID == "" {
		return domain.ErrInvalidArgument
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	err := u.tm.WithTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(ctx context.Context, tx repository.Tx) error {
		r, err := u.referrals.FindByID(ctx, tx, referralID)
		if err != nil {
			return err
		}
		if r.Status == model.ReferralApproved {
			// Approving twice must not double-credit.
			return nil
		}

		r.Status = model.ReferralApproved
		t := now
		r.ApprovedAt = &t
		if err := u.referrals.Save(ctx, tx, r); err != nil {
			return err
		}

		w, err := u.wallets.FindByUserID(ctx, tx, r.ReferrerID)
		if errors.Is(err, domain.ErrNotFound) {
			w, err = model.NewWallet(r.ReferrerID)
		}
		if err != nil {
			return err
		}
		w.Balance += r.CreditAmount
		w.UpdatedAt = now
		if err := u.wallets.Save(ctx, tx, w); err != nil {
			return err
		}

		return u.wallets.AppendTransaction(ctx, tx, &model.WalletTransaction{
			ID:          ulid.MustNew(ulid.Timestamp(now), u.entropy).String(),
			WalletID:    w.ID,
			UserID:      r.ReferrerID,
			Amount:      r.CreditAmount,
			Type:        model.TransactionCredit,
			Description: "Crédito por indicação aprovada",
			ReferralID:  &r.ID,
			CreatedAt:   now,
		})
	})
	return mapStoreError(err)
}
