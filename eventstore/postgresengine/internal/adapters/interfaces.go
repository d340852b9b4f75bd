package adapters

import "context"

// DBAdapter defines the database operations needed by the event store.
type DBAdapter interface {
	// Query runs a read. Adapters with a replica use it for eventually consistent reads.
	Query(ctx context.Context, query string) (DBRows, error)

	// Exec runs a statement on the primary.
	Exec(ctx context.Context, query string) (DBResult, error)

	// ExecLocked runs lockStmt and then query inside one transaction on the primary.
	ExecLocked(ctx context.Context, lockStmt string, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
