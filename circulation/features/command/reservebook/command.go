package reservebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "ReserveBook"
)

// Command represents the intent of a patron to reserve a book.
// TransactionID identifies the transaction the reservation will open.
type Command struct {
	TransactionID uuid.UUID
	BookID        uuid.UUID
	PatronID      uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a fresh TransactionID.
func BuildCommand(bookID uuid.UUID, patronID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		TransactionID: uuid.New(),
		BookID:        bookID,
		PatronID:      patronID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
