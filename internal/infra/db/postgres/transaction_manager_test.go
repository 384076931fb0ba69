//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/domain/ports/repository"
	"levefit-companion/internal/usecase"
)

// failingValidateRepo delegates to the real profile repo but fails the gate
// flag write, standing in for a store hiccup after the code row was already
// updated inside the transaction.
type failingValidateRepo struct {
	repository.ProfileRepository
	failWith error
}

func (r *failingValidateRepo) SetCodeValidated(_ context.Context, _ repository.Tx, _ string) error {
	return r.failWith
}

func TestRedeemRollsBack_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	codes := NewAccessCodeRepo(testPool)
	profiles := NewProfileRepo(testPool)
	tm := NewTxManager(testPool)
	logger := zerolog.Nop()

	t.Run("failure after the code write leaves the code unused", func(t *testing.T) {
		cleanup(t)

		p, err := model.NewProfile("user-1", "Maria")
		if err != nil {
			t.Fatalf("NewProfile: %v", err)
		}
		if err := profiles.Save(ctx, nil, p); err != nil {
			t.Fatalf("save profile: %v", err)
		}
		code, err := model.NewAccessCode("ROLLBACK")
		if err != nil {
			t.Fatalf("NewAccessCode: %v", err)
		}
		if err := codes.Insert(ctx, nil, code); err != nil {
			t.Fatalf("Insert: %v", err)
		}

		broken := &failingValidateRepo{
			ProfileRepository: profiles,
			failWith:          errors.New("gate flag write failed"),
		}
		uc := usecase.NewAccessUseCase(codes, broken, tm, 5*time.Second, &logger)

		_, err = uc.Redeem(ctx, "user-1", "ROLLBACK")
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("want ErrStoreUnavailable, got %v", err)
		}

		// The transaction must have rolled the code write back with it.
		found, err := codes.FindByCode(ctx, nil, "ROLLBACK")
		if err != nil {
			t.Fatalf("FindByCode after rollback: %v", err)
		}
		if found.IsUsed || found.UsedBy != nil || found.UsedAt != nil {
			t.Fatalf("code mutated despite rollback: %+v", found)
		}
		stored, err := profiles.FindByUserID(ctx, nil, "user-1")
		if err != nil {
			t.Fatalf("FindByUserID: %v", err)
		}
		if stored.CodeValidated {
			t.Fatal("gate flag set despite rollback")
		}

		// Once the store recovers the same code redeems normally.
		healthy := usecase.NewAccessUseCase(codes, profiles, tm, 5*time.Second, &logger)
		redeemed, err := healthy.Redeem(ctx, "user-1", "ROLLBACK")
		if err != nil {
			t.Fatalf("retry Redeem: %v", err)
		}
		if !redeemed.IsUsed || redeemed.UsedBy == nil || *redeemed.UsedBy != "user-1" {
			t.Fatalf("retry did not redeem: %+v", redeemed)
		}
	})

	t.Run("redeem for an unknown user leaves the code unused", func(t *testing.T) {
		cleanup(t)

		code, err := model.NewAccessCode("GHOSTUSE")
		if err != nil {
			t.Fatalf("NewAccessCode: %v", err)
		}
		if err := codes.Insert(ctx, nil, code); err != nil {
			t.Fatalf("Insert: %v", err)
		}

		uc := usecase.NewAccessUseCase(codes, profiles, tm, 5*time.Second, &logger)
		// No profile row exists, so the used_by foreign key rejects the
		// write and the transaction aborts.
		if _, err := uc.Redeem(ctx, "ghost", "GHOSTUSE"); err == nil {
			t.Fatal("want error for unknown user")
		}

		found, err := codes.FindByCode(ctx, nil, "GHOSTUSE")
		if err != nil {
			t.Fatalf("FindByCode: %v", err)
		}
		if found.IsUsed {
			t.Fatalf("code consumed by unknown user: %+v", found)
		}
	})
}
