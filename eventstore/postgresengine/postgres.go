package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName = "events"
	colEventType          = "event_type"
	colOccurredAt         = "occurred_at"
	colPayload            = "payload"
	colMetadata           = "metadata"
	colSequenceNumber     = "sequence_number"
	cteContext            = "context"
	cteVals               = "vals"
	dialectPostgres       = "postgres"
	aliasMaxSeq           = "max_seq"
	castText              = "?::text"
	castTimestamp         = "?::timestamp with time zone"
	castJsonb             = "?::jsonb"
	containsJsonb         = "payload @> ?::jsonb"
)

type sqlQueryString = string

// EventStore is the PostgreSQL engine. It is safe for concurrent use.
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromPGXPoolAndReplica creates a new EventStore that serves eventually consistent reads
// from the replica pool. A nil replica behaves like NewEventStoreFromPGXPool.
func NewEventStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query retrieves events from the Postgres event store based on the provided eventstore.Filter criteria
// and returns them ordered by sequence number, together with the MaxSequenceNumberUint of this
// "dynamic event stream" at the time of the query (0 if nothing matched).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, span := es.startSpan(ctx, eventstore.SpanNameQuery, map[string]string{eventstore.LabelOperation: eventstore.OperationQuery})
	start := time.Now()

	fail := func(errorType string, err error) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error) {
		es.recordError(ctx, eventstore.OperationQuery, eventstore.MetricQueryDuration, errorType, time.Since(start))
		es.finishSpan(span, eventstore.StatusError, map[string]string{eventstore.LabelErrorType: errorType})

		return nil, 0, err
	}

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.logError(ctx, "failed to build select query", buildQueryErr)
		return fail("build_query", buildQueryErr)
	}

	rows, queryErr := es.db.Query(ctx, sqlQuery)
	es.logSQL(ctx, eventstore.OperationQuery, sqlQuery, time.Since(start))
	if queryErr != nil {
		es.logError(ctx, "database query execution failed", queryErr, "query", sqlQuery)
		return fail("query", errors.Join(eventstore.ErrQueryingEventsFailed, queryErr))
	}
	defer es.closeRows(ctx, rows)

	eventStream, maxSequenceNumber, scanErr := es.scanRows(ctx, rows)
	if scanErr != nil {
		return fail("scan", scanErr)
	}

	duration := time.Since(start)
	es.recordSuccess(ctx, eventstore.OperationQuery, eventstore.MetricQueryDuration, eventstore.MetricEventsQueried, len(eventStream), duration)
	es.finishSpan(span, eventstore.StatusSuccess, map[string]string{
		"event_count":  fmt.Sprintf("%d", len(eventStream)),
		"max_sequence": fmt.Sprintf("%d", maxSequenceNumber),
	})
	es.logInfo(ctx, "query completed", "event_count", len(eventStream), "duration_ms", toMilliseconds(duration))

	return eventStream, maxSequenceNumber, nil
}

func (es *EventStore) scanRows(ctx context.Context, rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var (
		eventType      string
		occurredAt     time.Time
		payload        []byte
		metadata       []byte
		sequenceNumber eventstore.MaxSequenceNumberUint
	)

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); err != nil {
			es.logError(ctx, "failed to scan database row", err)
			return nil, 0, errors.Join(eventstore.ErrScanningDBRowFailed, err)
		}

		event, err := eventstore.BuildStorableEvent(eventType, occurredAt, payload, metadata)
		if err != nil {
			es.logError(ctx, "failed to build storable event from database row", err, "event_type", eventType)
			return nil, 0, errors.Join(eventstore.ErrBuildingStorableEventFailed, err)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = sequenceNumber
	}

	if err := rows.Err(); err != nil {
		es.logError(ctx, "failed to iterate database rows", err)
		return nil, 0, errors.Join(eventstore.ErrScanningDBRowFailed, err)
	}

	return eventStream, maxSequenceNumber, nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logWarn(ctx, "failed to close database rows", "error", closeErr.Error())
	}
}

// Append atomically appends one or multiple eventstore.StorableEvent(s) if no event matching the filter
// was appended after expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict
// and appends nothing.
//
// The filter must be the same as the one used for the Query the decision was based on.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	ctx, span := es.startSpan(ctx, eventstore.SpanNameAppend, map[string]string{
		eventstore.LabelOperation: eventstore.OperationAppend,
		"event_type":              event.EventType,
		"event_count":             fmt.Sprintf("%d", len(allEvents)),
		"expected_sequence":       fmt.Sprintf("%d", expectedMaxSequenceNumber),
	})
	start := time.Now()

	fail := func(errorType string, err error) error {
		es.recordError(ctx, eventstore.OperationAppend, eventstore.MetricAppendDuration, errorType, time.Since(start))
		es.finishSpan(span, eventstore.StatusError, map[string]string{eventstore.LabelErrorType: errorType})

		return err
	}

	sqlQuery, buildQueryErr := es.buildInsertQuery(allEvents, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		es.logError(ctx, "failed to build insert query", buildQueryErr, "event_count", len(allEvents))
		return fail("build_query", buildQueryErr)
	}

	lockStmt, buildLockErr := es.buildAdvisoryLockStatement()
	if buildLockErr != nil {
		return fail("build_query", buildLockErr)
	}

	result, execErr := es.db.ExecLocked(ctx, lockStmt, sqlQuery)
	es.logSQL(ctx, eventstore.OperationAppend, sqlQuery, time.Since(start))
	if execErr != nil {
		es.logError(ctx, "database execution failed during event append", execErr, "query", sqlQuery)
		return fail("exec", errors.Join(eventstore.ErrAppendingEventFailed, execErr))
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(ctx, "failed to get rows affected count", rowsAffectedErr)
		return fail("rows_affected", errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr))
	}

	duration := time.Since(start)

	if rowsAffected < int64(len(allEvents)) {
		es.recordConflict(ctx, duration)
		es.finishSpan(span, eventstore.StatusConflict, map[string]string{"rows_affected": fmt.Sprintf("%d", rowsAffected)})
		es.logInfo(ctx, "concurrency conflict detected",
			"expected_events", len(allEvents),
			"rows_affected", rowsAffected,
			"expected_sequence", expectedMaxSequenceNumber)

		return eventstore.ErrConcurrencyConflict
	}

	es.recordSuccess(ctx, eventstore.OperationAppend, eventstore.MetricAppendDuration, eventstore.MetricEventsAppended, len(allEvents), duration)
	es.finishSpan(span, eventstore.StatusSuccess, map[string]string{"rows_affected": fmt.Sprintf("%d", rowsAffected)})
	es.logInfo(ctx, "events appended", "event_count", len(allEvents), "duration_ms", toMilliseconds(duration))

	return nil
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	whereExpression, err := buildWhereExpression(filter)
	if err != nil {
		return "", err
	}

	sqlQuery, _, toSQLErr := selectStmt.Where(whereExpression).ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// buildInsertQuery builds one INSERT ... SELECT statement that only inserts if the max sequence number
// of the events matching the filter is still the expected one.
func (es *EventStore) buildInsertQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	whereExpression, err := buildWhereExpression(filter)
	if err != nil {
		return "", err
	}

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(whereExpression)

	valuesStmt := (*goqu.SelectDataset)(nil)
	for _, event := range events {
		eventStmt := builder.Select(
			goqu.L(castText, event.EventType).As(colEventType),
			goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = eventStmt
			continue
		}

		valuesStmt = valuesStmt.UnionAll(eventStmt)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.T(cteVals).Col(colEventType),
					goqu.T(cteVals).Col(colOccurredAt),
					goqu.T(cteVals).Col(colPayload),
					goqu.T(cteVals).Col(colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// buildAdvisoryLockStatement serializes appends to the same table for the duration of the transaction.
func (es *EventStore) buildAdvisoryLockStatement() (sqlQueryString, error) {
	lockStmt, _, err := goqu.Dialect(dialectPostgres).
		Select(goqu.Func("pg_advisory_xact_lock", goqu.Func("hashtext", es.eventTableName))).
		ToSQL()
	if err != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return lockStmt, nil
}

func buildWhereExpression(filter eventstore.Filter) (exp.Expression, error) {
	itemsExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		eventTypeExpressions := make([]exp.Expression, 0, len(item.EventTypes()))
		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(eventTypeExpressions, goqu.Ex{colEventType: eventType})
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))
		for _, predicate := range item.Predicates() {
			document, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(
				map[string]string{predicate.Key(): predicate.Val()},
			)
			if err != nil {
				return nil, errors.Join(eventstore.ErrBuildingQueryFailed, err)
			}

			predicateExpressions = append(predicateExpressions, goqu.L(containsJsonb, string(document)))
		}

		predicatesExpressionList := goqu.Or(predicateExpressions...)
		if item.AllPredicatesMustMatch() {
			predicatesExpressionList = goqu.And(predicateExpressions...)
		}

		itemsExpressions = append(
			itemsExpressions,
			goqu.And(goqu.Or(eventTypeExpressions...), predicatesExpressionList),
		)
	}

	return goqu.Or(itemsExpressions...), nil
}
