package postgres

import (
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
)

type ownerTableModel struct {
	ID              string    `db:"id"`
	TeamName        string    `db:"team_name"`
	UserID          string    `db:"user_id"`
	TotalPoints     int64     `db:"total_points"`
	RemainingPoints int64     `db:"remaining_points"`
	CreatedAt       time.Time `db:"created_at"`
}

func ownerFromRow(row ownerTableModel) owner.Owner {
	return owner.Owner{
		ID:              row.ID,
		TeamName:        row.TeamName,
		UserID:          row.UserID,
		TotalPoints:     row.TotalPoints,
		RemainingPoints: row.RemainingPoints,
		CreatedAt:       row.CreatedAt,
	}
}

type ownerInsertModel struct {
	ID              string    `db:"id"`
	TeamName        string    `db:"team_name"`
	UserID          string    `db:"user_id"`
	TotalPoints     int64     `db:"total_points"`
	RemainingPoints int64     `db:"remaining_points"`
	CreatedAt       time.Time `db:"created_at"`
}
