package livefeed

import "time"

// EventTypeSnapshot greets every new client with the current auction state
// so late joiners do not wait for the next bid to render the console.
const EventTypeSnapshot = "auction.snapshot"

// Event is the wire frame pushed to live-feed clients.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}
