package registerpatron

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "RegisterPatron"
)

// Command represents the intent to register a patron.
type Command struct {
	PatronID                    uuid.UUID
	Name                        string
	Email                       string
	Phone                       string
	PreferredNotificationMethod core.NotificationChannel
	OccurredAt                  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	patronID uuid.UUID,
	name string,
	email string,
	phone string,
	preferredNotificationMethod core.NotificationChannel,
	occurredAt time.Time,
) Command {

	return Command{
		PatronID:                    patronID,
		Name:                        name,
		Email:                       email,
		Phone:                       phone,
		PreferredNotificationMethod: preferredNotificationMethod,
		OccurredAt:                  core.ToOccurredAt(occurredAt),
	}
}
