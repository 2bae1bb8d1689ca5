package postgres

import (
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
)

type inningsTableModel struct {
	ID            string    `db:"id"`
	MatchID       string    `db:"match_id"`
	Number        int       `db:"number"`
	BattingTeamID string    `db:"batting_team_id"`
	BowlingTeamID string    `db:"bowling_team_id"`
	TotalRuns     int       `db:"total_runs"`
	Wickets       int       `db:"wickets"`
	Extras        int       `db:"extras"`
	LegalBalls    int       `db:"legal_balls"`
	Target        int       `db:"target"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

func inningsFromRow(row inningsTableModel) innings.Innings {
	return innings.Innings{
		ID:            row.ID,
		MatchID:       row.MatchID,
		Number:        row.Number,
		BattingTeamID: row.BattingTeamID,
		BowlingTeamID: row.BowlingTeamID,
		TotalRuns:     row.TotalRuns,
		Wickets:       row.Wickets,
		Extras:        row.Extras,
		LegalBalls:    row.LegalBalls,
		Target:        row.Target,
		Status:        innings.Status(row.Status),
		CreatedAt:     row.CreatedAt,
	}
}
