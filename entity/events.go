package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

// AssistanceRequested is published when a caller opens a ticket. The operator
// notification is delivered by the event handler subscribed to it, so ticket
// creation never blocks on the Slack API.
type AssistanceRequested struct {
	Header         EventHeader `json:"header"`
	TicketID       string      `json:"ticket_id"`
	ConversationID string      `json:"conversation_id"`
	Language       string      `json:"language"`
	Question       string      `json:"question"`
	Context        string      `json:"context"`
}
