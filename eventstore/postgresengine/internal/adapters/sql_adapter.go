package adapters

import (
	"context"
	"database/sql"
	"errors"
)

// SQLAdapter implements DBAdapter for sql.DB.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new SQL adapter.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return s.db.ExecContext(ctx, query)
}

func (s *SQLAdapter) ExecLocked(ctx context.Context, lockStmt string, query string) (DBResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return execLockedStd(ctx, tx, lockStmt, query)
}

// execLockedStd finishes a transaction that was started on a database/sql compatible connection.
func execLockedStd(ctx context.Context, tx *sql.Tx, lockStmt string, query string) (DBResult, error) {
	rollback := func(err error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			return errors.Join(err, rollbackErr)
		}

		return err
	}

	if _, err := tx.ExecContext(ctx, lockStmt); err != nil {
		return nil, rollback(err)
	}

	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return nil, rollback(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, rollback(err)
	}

	return result, nil
}

// stdRows wraps sql.Rows, it serves both sql.DB and sqlx.DB.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}
