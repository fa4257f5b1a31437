package memory

import (
	"context"
	"sync"
)

// TxManager serializes transactional sections with one lock spanning every
// memory store, so a multi-repository transition (status update plus ledger
// mutation) is observed as a whole. There is no rollback: callers order
// their writes so every precondition is checked before the first mutation.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager { return &TxManager{} }

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
