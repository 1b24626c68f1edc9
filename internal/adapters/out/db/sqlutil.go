// internal/adapters/out/db/sqlutil.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"canteen/internal/domain/common"
)

// RowScanner is the Scan method shared by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Runner is the subset of *sql.DB and *sql.Tx the store needs.
type Runner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type txKey struct{}

// CtxWithTx stores tx in ctx.
func CtxWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx returns the *sql.Tx stored in ctx, or nil.
func TxFromCtx(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

// GetRunner prefers a transaction carried by ctx over db.
func GetRunner(ctx context.Context, db *sql.DB) Runner {
	if tx := TxFromCtx(ctx); tx != nil {
		return tx
	}
	return db
}

// RunInTx runs fn inside a transaction reachable through ctx.
func RunInTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	if TxFromCtx(ctx) != nil {
		return fn(ctx)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(CtxWithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SetAll upserts documents in one transaction. Only the seed command uses
// it; the console itself writes documents one at a time.
func (s *DocumentStorePG) SetAll(ctx context.Context, collection string, docs []common.Document) error {
	if s.DB == nil {
		return errors.New("postgres: db is nil")
	}
	return RunInTx(ctx, s.DB, func(ctx context.Context) error {
		for _, d := range docs {
			if err := s.Set(ctx, collection, d.ID, d.Data); err != nil {
				return err
			}
		}
		return nil
	})
}
