package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transactor 讓 service 在同一個 transaction 內呼叫多個 repository 方法
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type PoolTransactor struct {
	pool *pgxpool.Pool
}

func NewTransactor(pool *pgxpool.Pool) Transactor {
	return &PoolTransactor{pool: pool}
}

// WithinTx fn 回傳錯誤時 rollback，否則 commit
func (t *PoolTransactor) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
