package match

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Match is a limited-overs fixture between two owner teams. MaxOvers bounds
// each innings; WinnerID is set only once the match completes.
type Match struct {
	ID        string
	TeamAID   string
	TeamBID   string
	MaxOvers  int
	Status    Status
	WinnerID  string
	Result    string
	StartedAt *time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
}
