package repository

import (
	"context"

	"levefit-companion/internal/domain/model"
)

type WalletRepository interface {
	// FindByUserID returns the wallet or domain.ErrNotFound.
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.Wallet, error)
	// Save creates or updates a wallet (balance included).
	Save(ctx context.Context, tx Tx, w *model.Wallet) error
	// AppendTransaction adds a ledger entry.
	AppendTransaction(ctx context.Context, tx Tx, t *model.WalletTransaction) error
	// ListTransactions returns the ledger newest first.
	ListTransactions(ctx context.Context, tx Tx, userID string) ([]*model.WalletTransaction, error)
}
