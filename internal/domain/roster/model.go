package roster

import "time"

// Entry records a settled purchase: the player now belongs to the owner at
// the hammer price. One player appears in at most one roster.
type Entry struct {
	ID          string
	OwnerID     string
	PlayerID    string
	BoughtPrice int64
	BoughtAt    time.Time
}
