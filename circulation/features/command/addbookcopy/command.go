package addbookcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "AddBookCopy"
)

// Command represents the intent to add a book copy to circulation.
type Command struct {
	BookID     uuid.UUID
	ISBN       core.ISBNString
	Title      string
	Authors    string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, isbn string, title string, authors string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		ISBN:       isbn,
		Title:      title,
		Authors:    authors,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
