package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/roster"
	qb "github.com/smarteck4/cricket-auction-pro/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Insert(ctx context.Context, e roster.Entry) error {
	query, args, err := qb.InsertModel("roster_entries", rosterEntryTableModel{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		PlayerID:    e.PlayerID,
		BoughtPrice: e.BoughtPrice,
		BoughtAt:    e.BoughtAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert roster entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert roster entry: %w", err)
	}
	return nil
}

func (r *RosterRepository) ListByOwner(ctx context.Context, ownerID string) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(qb.Eq("owner_id", ownerID)).
		OrderBy("bought_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster entries query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterEntryFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) GetByPlayer(ctx context.Context, playerID string) (roster.Entry, bool, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return roster.Entry{}, false, fmt.Errorf("build get roster entry by player query: %w", err)
	}

	var row rosterEntryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Entry{}, false, nil
		}
		return roster.Entry{}, false, fmt.Errorf("get roster entry by player: %w", err)
	}

	return rosterEntryFromRow(row), true, nil
}

func (r *RosterRepository) CountByCategory(ctx context.Context, ownerID string) (map[player.Category]int64, error) {
	query, args, err := qb.Select("p.category AS category", "COUNT(*) AS cnt").
		From("roster_entries r JOIN players p ON p.id = r.player_id").
		Where(qb.Eq("r.owner_id", ownerID)).
		GroupBy("p.category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count roster by category query: %w", err)
	}

	var rows []categoryCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count roster by category: %w", err)
	}

	out := make(map[player.Category]int64, len(rows))
	for _, row := range rows {
		out[player.Category(row.Category)] = row.Count
	}
	return out, nil
}
