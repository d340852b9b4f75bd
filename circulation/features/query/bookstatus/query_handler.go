package bookstatus

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal -> Project.
// Observability is added by wrapping it with observable.QueryWrapper.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

// Handle executes the query with eventual consistency.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookStatus, error) {
	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter(query.BookID))
	if err != nil {
		return BookStatus{}, shell.ToCirculationError(err)
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return BookStatus{}, shell.ToCirculationError(err)
	}

	return Project(history, query, maxSequenceNumber)
}
