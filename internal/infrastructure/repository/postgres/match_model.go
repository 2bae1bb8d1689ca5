package postgres

import (
	"database/sql"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/match"
)

type matchTableModel struct {
	ID        string         `db:"id"`
	TeamAID   string         `db:"team_a_id"`
	TeamBID   string         `db:"team_b_id"`
	MaxOvers  int            `db:"max_overs"`
	Status    string         `db:"status"`
	WinnerID  sql.NullString `db:"winner_id"`
	Result    sql.NullString `db:"result"`
	StartedAt *time.Time     `db:"started_at"`
	EndedAt   *time.Time     `db:"ended_at"`
	CreatedAt time.Time      `db:"created_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:        row.ID,
		TeamAID:   row.TeamAID,
		TeamBID:   row.TeamBID,
		MaxOvers:  row.MaxOvers,
		Status:    match.Status(row.Status),
		WinnerID:  row.WinnerID.String,
		Result:    row.Result.String,
		StartedAt: row.StartedAt,
		EndedAt:   row.EndedAt,
		CreatedAt: row.CreatedAt,
	}
}
