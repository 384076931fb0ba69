package web

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"levefit-companion/internal/catalog"
	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/usecase"
)

func newLogger() *zerolog.Logger { l := zerolog.New(io.Discard); return &l }

// Stub use cases: each method is a swappable func so a test controls exactly
// the behavior it cares about. Unset methods fail loudly via nil deref,
// which points straight at the missing stub.

type stubAccessUC struct {
	redeem   func(ctx context.Context, userID, code string) (*model.AccessCode, error)
	issue    func(ctx context.Context, rawCode string) (*model.AccessCode, error)
	list     func(ctx context.Context) ([]*model.AccessCode, error)
	generate func() string
}

var _ usecase.AccessUseCase = (*stubAccessUC)(nil)

func (s *stubAccessUC) Redeem(ctx context.Context, userID, code string) (*model.AccessCode, error) {
	return s.redeem(ctx, userID, code)
}
func (s *stubAccessUC) Issue(ctx context.Context, rawCode string) (*model.AccessCode, error) {
	return s.issue(ctx, rawCode)
}
func (s *stubAccessUC) List(ctx context.Context) ([]*model.AccessCode, error) { return s.list(ctx) }
func (s *stubAccessUC) GenerateCandidateCode() string                         { return s.generate() }

type stubProfileUC struct {
	register func(ctx context.Context, userID, name string) (*model.Profile, error)
	get      func(ctx context.Context, userID string) (*model.Profile, error)
	kit      func(ctx context.Context, userID, kitID string) error
}

var _ usecase.ProfileUseCase = (*stubProfileUC)(nil)

func (s *stubProfileUC) RegisterOrFetch(ctx context.Context, userID, name string) (*model.Profile, error) {
	return s.register(ctx, userID, name)
}
func (s *stubProfileUC) Get(ctx context.Context, userID string) (*model.Profile, error) {
	return s.get(ctx, userID)
}
func (s *stubProfileUC) SelectKit(ctx context.Context, userID, kitID string) error {
	return s.kit(ctx, userID, kitID)
}

type stubJourneyUC struct {
	check func(ctx context.Context, userID string, enrolledAt, now time.Time) (*catalog.JourneyMessage, error)
	day   func(enrolledAt, now time.Time) int
	due   func(ctx context.Context, now time.Time) (int, error)
}

var _ usecase.JourneyUseCase = (*stubJourneyUC)(nil)

func (s *stubJourneyUC) CheckForToday(ctx context.Context, userID string, enrolledAt, now time.Time) (*catalog.JourneyMessage, error) {
	return s.check(ctx, userID, enrolledAt, now)
}
func (s *stubJourneyUC) DayIndex(enrolledAt, now time.Time) int { return s.day(enrolledAt, now) }
func (s *stubJourneyUC) CountDueToday(ctx context.Context, now time.Time) (int, error) {
	return s.due(ctx, now)
}

type stubProgressUC struct {
	capsule      func(ctx context.Context, userID string, now time.Time) (*model.Progress, error)
	water        func(ctx context.Context, userID string, now time.Time) (*model.Progress, error)
	get          func(ctx context.Context, userID string) (*model.Progress, error)
	achievements func(ctx context.Context, userID string) ([]model.AchievementStatus, error)
}

var _ usecase.ProgressUseCase = (*stubProgressUC)(nil)

func (s *stubProgressUC) LogCapsule(ctx context.Context, userID string, now time.Time) (*model.Progress, error) {
	return s.capsule(ctx, userID, now)
}
func (s *stubProgressUC) LogWater(ctx context.Context, userID string, now time.Time) (*model.Progress, error) {
	return s.water(ctx, userID, now)
}
func (s *stubProgressUC) Get(ctx context.Context, userID string) (*model.Progress, error) {
	return s.get(ctx, userID)
}
func (s *stubProgressUC) Achievements(ctx context.Context, userID string) ([]model.AchievementStatus, error) {
	return s.achievements(ctx, userID)
}

type stubWalletUC struct {
	getOrCreate func(ctx context.Context, userID string) (*model.Wallet, error)
	overview    func(ctx context.Context, userID string) (*usecase.WalletOverview, error)
	invite      func(ctx context.Context, userID, email string) (*model.Referral, error)
	approve     func(ctx context.Context, referralID string, now time.Time) error
}

var _ usecase.WalletUseCase = (*stubWalletUC)(nil)

func (s *stubWalletUC) GetOrCreate(ctx context.Context, userID string) (*model.Wallet, error) {
	return s.getOrCreate(ctx, userID)
}
func (s *stubWalletUC) Overview(ctx context.Context, userID string) (*usecase.WalletOverview, error) {
	return s.overview(ctx, userID)
}
func (s *stubWalletUC) InviteByEmail(ctx context.Context, userID, email string) (*model.Referral, error) {
	return s.invite(ctx, userID, email)
}
func (s *stubWalletUC) ApproveReferral(ctx context.Context, referralID string, now time.Time) error {
	return s.approve(ctx, referralID, now)
}

// notFoundProfileUC is a convenience stub for routes that never reach the
// profile layer.
func notFoundProfileUC() *stubProfileUC {
	return &stubProfileUC{
		get: func(ctx context.Context, userID string) (*model.Profile, error) {
			return nil, domain.ErrNotFound
		},
	}
}
