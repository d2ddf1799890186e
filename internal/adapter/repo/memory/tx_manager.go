package memory

import "context"

// TxManager is a pass-through: the store serializes each operation under
// its own lock, and the engine's single append per cycle needs nothing
// stronger.
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
