package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle threaded through repository calls. The
// concrete type is infra-defined (pgx.Tx for Postgres). Repositories accept
// NoTX for the non-transactional path.
type Tx interface{}

var NoTX Tx

// TransactionManager executes a function inside a store transaction, passing
// the underlying handle via tx. Keeping the handle opaque means use-case
// interfaces never leak storage types.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
