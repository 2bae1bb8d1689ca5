package owner

import "time"

// Owner is a franchise taking part in the auction. RemainingPoints is the
// budget left after every settled purchase, so the invariant
// RemainingPoints = TotalPoints - sum(bought prices) holds at all times.
type Owner struct {
	ID              string
	TeamName        string
	UserID          string
	TotalPoints     int64
	RemainingPoints int64
	CreatedAt       time.Time
}
