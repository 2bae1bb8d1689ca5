package postgres

import (
	"database/sql"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
)

type deliveryTableModel struct {
	ID         string         `db:"id"`
	InningsID  string         `db:"innings_id"`
	Sequence   int            `db:"sequence"`
	OverNumber int            `db:"over_number"`
	BallNumber int            `db:"ball_number"`
	BatsmanID  string         `db:"batsman_id"`
	BowlerID   string         `db:"bowler_id"`
	RunsScored int            `db:"runs_scored"`
	ExtraType  sql.NullString `db:"extra_type"`
	ExtraRuns  int            `db:"extra_runs"`
	IsWicket   bool           `db:"is_wicket"`
	WicketType sql.NullString `db:"wicket_type"`
	FielderID  sql.NullString `db:"fielder_id"`
	RecordedAt time.Time      `db:"recorded_at"`
}

func ballFromRow(row deliveryTableModel) delivery.Ball {
	return delivery.Ball{
		ID:         row.ID,
		InningsID:  row.InningsID,
		Sequence:   row.Sequence,
		OverNumber: row.OverNumber,
		BallNumber: row.BallNumber,
		BatsmanID:  row.BatsmanID,
		BowlerID:   row.BowlerID,
		RunsScored: row.RunsScored,
		ExtraType:  delivery.ExtraType(row.ExtraType.String),
		ExtraRuns:  row.ExtraRuns,
		IsWicket:   row.IsWicket,
		WicketType: delivery.WicketType(row.WicketType.String),
		FielderID:  row.FielderID.String,
		RecordedAt: row.RecordedAt,
	}
}
