package bid

import "time"

// Bid is one accepted bid in the history of a player's auction round.
type Bid struct {
	ID       string
	PlayerID string
	OwnerID  string
	Amount   int64
	PlacedAt time.Time
}
