package postgres

import (
	"database/sql"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
)

type auctionStateTableModel struct {
	ID                   string         `db:"id"`
	ActivePlayerID       sql.NullString `db:"active_player_id"`
	CurrentBid           int64          `db:"current_bid"`
	LeadingBidderID      sql.NullString `db:"leading_bidder_id"`
	IsActive             bool           `db:"is_active"`
	TimerDurationSeconds int64          `db:"timer_duration_seconds"`
	TimerStartedAt       *time.Time     `db:"timer_started_at"`
	Version              int64          `db:"version"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func auctionStateFromRow(row auctionStateTableModel) auction.State {
	return auction.State{
		ID:                   row.ID,
		ActivePlayerID:       row.ActivePlayerID.String,
		CurrentBid:           row.CurrentBid,
		LeadingBidderID:      row.LeadingBidderID.String,
		IsActive:             row.IsActive,
		TimerDurationSeconds: row.TimerDurationSeconds,
		TimerStartedAt:       row.TimerStartedAt,
		Version:              row.Version,
		UpdatedAt:            row.UpdatedAt,
	}
}
