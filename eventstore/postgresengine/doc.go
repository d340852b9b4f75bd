// Package postgresengine provides a PostgreSQL implementation of the event store.
//
// The events table is append-only. Query selects all rows matching an eventstore.Filter.
// Append inserts new rows only if the max sequence number of the rows matching the same
// Filter is still the one the caller observed, so a stale decision can never be persisted.
// Appends are serialized with a transaction-scoped advisory lock.
//
// Three connection types are supported: pgxpool.Pool (optionally with a read replica),
// sql.DB and sqlx.DB, the latter two with the lib/pq driver or pgx's stdlib driver.
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("events"),
//		postgresengine.WithLogger(logger),
//	)
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
