package mocks

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
)

// FakeTransactor 直接執行 fn（tx 為 nil），以 mutex 模擬資料列鎖的序列化效果
type FakeTransactor struct {
	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

func NewFakeTransactor() *FakeTransactor {
	return &FakeTransactor{}
}

func (f *FakeTransactor) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := fn(nil); err != nil {
		f.Rollbacks++
		return err
	}
	f.Commits++
	return nil
}
