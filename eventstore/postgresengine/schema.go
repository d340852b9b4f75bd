package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// CreateSchema creates the events table and its indexes if they don't exist yet.
func (es *EventStore) CreateSchema(ctx context.Context) error {
	start := time.Now()

	for _, statement := range es.schemaStatements() {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.logError(ctx, "failed to create schema", err, "statement", statement)
			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	es.logInfo(ctx, "schema created", "table", es.eventTableName, "duration_ms", toMilliseconds(time.Since(start)))

	return nil
}

func (es *EventStore) schemaStatements() []string {
	table := pgx.Identifier{es.eventTableName}.Sanitize()
	eventTypeIndex := pgx.Identifier{es.eventTableName + "_event_type_idx"}.Sanitize()
	payloadIndex := pgx.Identifier{es.eventTableName + "_payload_idx"}.Sanitize()

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (event_type)`, eventTypeIndex, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING gin (payload jsonb_path_ops)`, payloadIndex, table),
	}
}
