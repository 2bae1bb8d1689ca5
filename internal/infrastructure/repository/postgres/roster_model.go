package postgres

import (
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/roster"
)

type rosterEntryTableModel struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	PlayerID    string    `db:"player_id"`
	BoughtPrice int64     `db:"bought_price"`
	BoughtAt    time.Time `db:"bought_at"`
}

func rosterEntryFromRow(row rosterEntryTableModel) roster.Entry {
	return roster.Entry{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		PlayerID:    row.PlayerID,
		BoughtPrice: row.BoughtPrice,
		BoughtAt:    row.BoughtAt,
	}
}

type categoryCountRow struct {
	Category string `db:"category"`
	Count    int64  `db:"cnt"`
}
