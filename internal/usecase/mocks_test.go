package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/domain/ports/repository"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// MockTxManager executes the function immediately with NoTX. Tests that need
// to verify transactional behavior can assign a custom WithTxFunc.
type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// memAccessCodeRepo is an in-memory implementation with the same
// compare-and-set semantics as the Postgres repository.
type memAccessCodeRepo struct {
	mu      sync.Mutex
	byID    map[string]*model.AccessCode
	byCode  map[string]string // code -> id
	findErr error
	markErr error
}

var _ repository.AccessCodeRepository = (*memAccessCodeRepo)(nil)

func newMemAccessCodeRepo() *memAccessCodeRepo {
	return &memAccessCodeRepo{
		byID:   make(map[string]*model.AccessCode),
		byCode: make(map[string]string),
	}
}

func (m *memAccessCodeRepo) Insert(ctx context.Context, tx repository.Tx, code *model.AccessCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byCode[code.Code]; exists {
		return domain.ErrCodeAlreadyExists
	}
	cp := *code
	m.byID[code.ID] = &cp
	m.byCode[code.Code] = code.ID
	return nil
}

func (m *memAccessCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.AccessCode, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byCode[code]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}
	cp := *m.byID[id]
	return &cp, nil
}

func (m *memAccessCodeRepo) MarkUsed(ctx context.Context, tx repository.Tx, id, userID string, usedAt time.Time) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.byID[id]
	if !ok || row.IsUsed {
		return false, nil
	}
	row.IsUsed = true
	uid := userID
	at := usedAt
	row.UsedBy = &uid
	row.UsedAt = &at
	return true, nil
}

func (m *memAccessCodeRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.AccessCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.AccessCode, 0, len(m.byID))
	for _, c := range m.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type memProfileRepo struct {
	mu          sync.Mutex
	store       map[string]*model.Profile
	saveErr     error
	validateErr error
}

var _ repository.ProfileRepository = (*memProfileRepo)(nil)

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{store: make(map[string]*model.Profile)}
}

func (m *memProfileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.UserID] = &cp
	return nil
}

func (m *memProfileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileRepo) SetCodeValidated(ctx context.Context, tx repository.Tx, userID string) error {
	if m.validateErr != nil {
		return m.validateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CodeValidated = true
	return nil
}

func (m *memProfileRepo) SetKit(ctx context.Context, tx repository.Tx, userID, kitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.KitType = kitID
	return nil
}

func (m *memProfileRepo) ListValidated(ctx context.Context, tx repository.Tx) ([]*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Profile
	for _, p := range m.store {
		if p.CodeValidated {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProfileRepo) NamesByUserIDs(ctx context.Context, tx repository.Tx, userIDs []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		if p, ok := m.store[id]; ok {
			out[id] = p.Name
		}
	}
	return out, nil
}

// memJourneyMarkerRepo mirrors the unique-constraint insert: MarkShown
// returns true exactly once per (user, day) no matter how many callers race.
type memJourneyMarkerRepo struct {
	mu      sync.Mutex
	markers map[string]bool
	markErr error
}

var _ repository.JourneyMarkerRepository = (*memJourneyMarkerRepo)(nil)

func newMemJourneyMarkerRepo() *memJourneyMarkerRepo {
	return &memJourneyMarkerRepo{markers: make(map[string]bool)}
}

func markerKey(userID string, day int) string {
	return fmt.Sprintf("%s#%d", userID, day)
}

func (m *memJourneyMarkerRepo) MarkShown(ctx context.Context, tx repository.Tx, userID string, day int) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := markerKey(userID, day)
	if m.markers[k] {
		return false, nil
	}
	m.markers[k] = true
	return true, nil
}

func (m *memJourneyMarkerRepo) Seen(ctx context.Context, tx repository.Tx, userID string, day int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markers[markerKey(userID, day)], nil
}

type memProgressRepo struct {
	mu    sync.Mutex
	store map[string]*model.Progress
}

var _ repository.ProgressRepository = (*memProgressRepo)(nil)

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{store: make(map[string]*model.Progress)}
}

func (m *memProgressRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProgressRepo) Save(ctx context.Context, tx repository.Tx, p *model.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.UserID] = &cp
	return nil
}

type memWalletRepo struct {
	mu      sync.Mutex
	wallets map[string]*model.Wallet // by user ID
	ledger  []*model.WalletTransaction
}

var _ repository.WalletRepository = (*memWalletRepo)(nil)

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: make(map[string]*model.Wallet)}
}

func (m *memWalletRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *memWalletRepo) Save(ctx context.Context, tx repository.Tx, w *model.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *w
	m.wallets[w.UserID] = &cp
	return nil
}

func (m *memWalletRepo) AppendTransaction(ctx context.Context, tx repository.Tx, t *model.WalletTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.ledger = append(m.ledger, &cp)
	return nil
}

func (m *memWalletRepo) ListTransactions(ctx context.Context, tx repository.Tx, userID string) ([]*model.WalletTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.WalletTransaction
	for i := len(m.ledger) - 1; i >= 0; i-- {
		if m.ledger[i].UserID == userID {
			cp := *m.ledger[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memReferralRepo struct {
	mu    sync.Mutex
	store map[string]*model.Referral
}

var _ repository.ReferralRepository = (*memReferralRepo)(nil)

func newMemReferralRepo() *memReferralRepo {
	return &memReferralRepo{store: make(map[string]*model.Referral)}
}

func (m *memReferralRepo) Save(ctx context.Context, tx repository.Tx, r *model.Referral) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store[r.ID] = &cp
	return nil
}

func (m *memReferralRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Referral, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReferralRepo) ListByReferrer(ctx context.Context, tx repository.Tx, referrerID string) ([]*model.Referral, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Referral
	for _, r := range m.store {
		if r.ReferrerID == referrerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}
