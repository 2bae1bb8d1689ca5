package postgres

import (
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
)

type playerTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Skill     string    `db:"skill"`
	BasePrice int64     `db:"base_price"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.ID,
		Name:      row.Name,
		Category:  player.Category(row.Category),
		Skill:     player.SkillRole(row.Skill),
		BasePrice: row.BasePrice,
		Status:    player.Status(row.Status),
		CreatedAt: row.CreatedAt,
	}
}

type playerInsertModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Skill     string    `db:"skill"`
	BasePrice int64     `db:"base_price"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
