package postgresengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

func Test_BuildSelectQuery(t *testing.T) {
	es := &EventStore{eventTableName: "events"}

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookReserved", "BookBorrowed").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		OrMatching().
		AnyEventTypeOf("PatronRegistered").
		AndAllPredicatesOf(eventstore.P("PatronID", "p-1")).
		Finalize()

	sqlQuery, err := es.buildSelectQuery(filter)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `SELECT "event_type", "occurred_at", "payload", "metadata", "sequence_number" FROM "events"`)
	assert.Contains(t, sqlQuery, `("event_type" = 'BookBorrowed')`)
	assert.Contains(t, sqlQuery, `payload @> '{"BookID":"b-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `payload @> '{"PatronID":"p-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
}

func Test_BuildSelectQuery_EscapesPredicateValues(t *testing.T) {
	es := &EventStore{eventTableName: "events"}

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("BookID", `x'; DROP TABLE events; --`)).
		Finalize()

	sqlQuery, err := es.buildSelectQuery(filter)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `x''; DROP TABLE events; --`)
}

func Test_BuildSelectQuery_WithEmptyFilter_HasNoWhereClause(t *testing.T) {
	es := &EventStore{eventTableName: "events"}

	sqlQuery, err := es.buildSelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	require.NoError(t, err)
	assert.NotContains(t, sqlQuery, "WHERE")
}

func Test_BuildInsertQuery_ChecksExpectedMaxSequenceNumber(t *testing.T) {
	es := &EventStore{eventTableName: "events"}
	event, err := eventstore.BuildStorableEventWithEmptyMetadata("BookReserved", time.Unix(0, 0).UTC(), []byte(`{"BookID":"b-1"}`))
	require.NoError(t, err)

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookReserved").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		Finalize()

	sqlQuery, err := es.buildInsertQuery(eventstore.StorableEvents{event, event}, filter, 42)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "events"`)
	assert.Contains(t, sqlQuery, "UNION ALL")
	assert.Contains(t, sqlQuery, `(COALESCE("max_seq", 0) = 42)`)
}

func Test_BuildAdvisoryLockStatement(t *testing.T) {
	es := &EventStore{eventTableName: "events"}

	lockStmt, err := es.buildAdvisoryLockStatement()

	require.NoError(t, err)
	assert.Equal(t, `SELECT pg_advisory_xact_lock(hashtext('events'))`, lockStmt)
}

func Test_Options(t *testing.T) {
	_, err := newEventStore(nil, WithTableName(""))
	assert.ErrorIs(t, err, eventstore.ErrEmptyEventsTableName)

	es, err := newEventStore(nil, WithTableName("library_events"))
	require.NoError(t, err)
	assert.Equal(t, "library_events", es.eventTableName)
}

func Test_NewEventStore_WithNilConnection(t *testing.T) {
	_, err := NewEventStoreFromPGXPool(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = NewEventStoreFromSQLDB(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)

	_, err = NewEventStoreFromSQLX(nil)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)
}
