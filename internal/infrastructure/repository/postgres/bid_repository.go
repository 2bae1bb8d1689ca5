package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/bid"
	qb "github.com/smarteck4/cricket-auction-pro/internal/platform/querybuilder"
)

type BidRepository struct {
	db *sqlx.DB
}

func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Insert(ctx context.Context, b bid.Bid) error {
	query, args, err := qb.InsertModel("bids", bidTableModel{
		ID:       b.ID,
		PlayerID: b.PlayerID,
		OwnerID:  b.OwnerID,
		Amount:   b.Amount,
		PlacedAt: b.PlacedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert bid query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (r *BidRepository) ListByPlayer(ctx context.Context, playerID string) ([]bid.Bid, error) {
	query, args, err := qb.Select("*").From("bids").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("placed_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list bids by player query: %w", err)
	}

	var rows []bidTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bids by player: %w", err)
	}

	out := make([]bid.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, bidFromRow(row))
	}
	return out, nil
}
