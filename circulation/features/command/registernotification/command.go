package registernotification

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "RegisterNotification"
)

// Command represents the request of a patron to be notified when a book becomes available.
type Command struct {
	NotificationID uuid.UUID
	BookID         uuid.UUID
	PatronID       uuid.UUID
	OccurredAt     core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a fresh NotificationID.
func BuildCommand(bookID uuid.UUID, patronID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		NotificationID: uuid.New(),
		BookID:         bookID,
		PatronID:       patronID,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
