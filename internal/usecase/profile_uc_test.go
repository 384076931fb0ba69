package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"levefit-companion/internal/domain"
)

func newProfileFixture(t *testing.T) (*profileUC, *memProfileRepo) {
	t.Helper()
	profiles := newMemProfileRepo()
	uc := NewProfileUseCase(profiles, NewMockTxManager(), time.Second, newTestLogger())
	return uc, profiles
}

func TestRegisterOrFetch_CreatesOnce(t *testing.T) {
	uc, _ := newProfileFixture(t)

	first, err := uc.RegisterOrFetch(context.Background(), "user-1", "Maria")
	if err != nil {
		t.Fatalf("RegisterOrFetch: %v", err)
	}
	if first.Name != "Maria" || first.CodeValidated {
		t.Fatalf("unexpected new profile: %+v", first)
	}

	// Second call must return the same enrollment anchor, not reset it.
	second, err := uc.RegisterOrFetch(context.Background(), "user-1", "Other Name")
	if err != nil {
		t.Fatalf("second RegisterOrFetch: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("enrollment anchor moved: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if second.Name != "Maria" {
		t.Fatalf("existing profile renamed on fetch: %q", second.Name)
	}
}

func TestRegisterOrFetch_RequiresUser(t *testing.T) {
	uc, _ := newProfileFixture(t)
	_, err := uc.RegisterOrFetch(context.Background(), "", "Maria")
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("want ErrNotAuthenticated, got %v", err)
	}
}

func TestSelectKit(t *testing.T) {
	uc, profiles := newProfileFixture(t)
	seedProfile(t, profiles, "user-1", "Maria")

	if err := uc.SelectKit(context.Background(), "user-1", "3_potes"); err != nil {
		t.Fatalf("SelectKit: %v", err)
	}
	p, err := profiles.FindByUserID(context.Background(), nil, "user-1")
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if p.KitType != "3_potes" {
		t.Fatalf("kit not recorded: %q", p.KitType)
	}

	if err := uc.SelectKit(context.Background(), "user-1", "99_potes"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("unknown kit: want ErrInvalidArgument, got %v", err)
	}
	if err := uc.SelectKit(context.Background(), "nobody", "1_pote"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: want ErrNotFound, got %v", err)
	}
}

func TestGet_WrapsStoreFailure(t *testing.T) {
	uc, profiles := newProfileFixture(t)
	seedProfile(t, profiles, "user-1", "Maria")
	profiles.saveErr = nil

	if _, err := uc.Get(context.Background(), "user-1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := uc.Get(context.Background(), "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
