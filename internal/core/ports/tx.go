package ports

import "context"

// TxRunner executes fn inside a single storage transaction. All repository
// calls made with the ctx passed to fn join that transaction; if fn returns
// an error the transaction is rolled back, otherwise it is committed.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
