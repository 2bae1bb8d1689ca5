package postgres

import (
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/bid"
)

type bidTableModel struct {
	ID       string    `db:"id"`
	PlayerID string    `db:"player_id"`
	OwnerID  string    `db:"owner_id"`
	Amount   int64     `db:"amount"`
	PlacedAt time.Time `db:"placed_at"`
}

func bidFromRow(row bidTableModel) bid.Bid {
	return bid.Bid{
		ID:       row.ID,
		PlayerID: row.PlayerID,
		OwnerID:  row.OwnerID,
		Amount:   row.Amount,
		PlacedAt: row.PlacedAt,
	}
}
