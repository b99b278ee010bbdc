package repository

import "context"

// Tx is an opaque transaction handle. Repositories accept nil to run
// against the pool directly, or a driver transaction started by a
// TransactionManager.
type Tx = any

// TransactionManager runs fn inside a database transaction.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
