package innings

import "time"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Innings holds the running aggregate for one side's turn at bat. LegalBalls
// counts deliveries that advance the over (wides and no-balls excluded);
// every derived figure such as the overs display or run rates folds from it.
// Target is the chase number for the second innings and zero otherwise.
type Innings struct {
	ID            string
	MatchID       string
	Number        int
	BattingTeamID string
	BowlingTeamID string
	TotalRuns     int
	Wickets       int
	Extras        int
	LegalBalls    int
	Target        int
	Status        Status
	CreatedAt     time.Time
}
