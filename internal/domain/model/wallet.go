package model

import (
	"time"

	"levefit-companion/internal/domain"

	"github.com/google/uuid"
)

// Wallet holds referral credit for one user. Balance is denominated in
// centavos to keep arithmetic integral.
type Wallet struct {
	ID        string
	UserID    string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewWallet(userID string) (*Wallet, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Wallet{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// WalletTransaction is an append-only ledger entry. IDs are ULIDs so the
// ledger sorts chronologically by ID.
type WalletTransaction struct {
	ID          string
	WalletID    string
	UserID      string
	Amount      int64
	Type        string // credit | debit
	Description string
	ReferralID  *string
	CreatedAt   time.Time
}

const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)
