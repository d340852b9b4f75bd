package bookstatus

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "BookStatus"
)

// Query asks for the availability of one book at a given instant.
type Query struct {
	BookID uuid.UUID
	At     time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(bookID uuid.UUID, at time.Time) Query {
	return Query{
		BookID: bookID,
		At:     at.UTC(),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
