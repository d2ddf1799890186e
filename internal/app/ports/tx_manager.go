package ports

import "context"

// TxManager scopes journal writes to one transaction. Stores that have
// no transactional backend provide a pass-through implementation.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
