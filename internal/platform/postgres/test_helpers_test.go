package postgres

import (
	"context"
	"database/sql"
)

// unusedDB implements store.DBTX but panics on any use. Tests hand it to
// stores to prove a code path returns before issuing a query.
type unusedDB struct{}

func (unusedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	panic("unexpected ExecContext call")
}

func (unusedDB) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	panic("unexpected PrepareContext call")
}

func (unusedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	panic("unexpected QueryContext call")
}

func (unusedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	panic("unexpected QueryRowContext call")
}
