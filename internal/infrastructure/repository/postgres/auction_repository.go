package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
	qb "github.com/smarteck4/cricket-auction-pro/internal/platform/querybuilder"
)

// AuctionRepository persists the singleton live-auction row. Writes go
// through a compare-and-swap on the version column; every concurrent
// writer except one sees auction.ErrVersionConflict and reloads.
type AuctionRepository struct {
	db *sqlx.DB
}

func NewAuctionRepository(db *sqlx.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

func (r *AuctionRepository) Get(ctx context.Context) (auction.State, bool, error) {
	query, args, err := qb.Select("*").From("auction_state").
		Limit(1).
		ToSQL()
	if err != nil {
		return auction.State{}, false, fmt.Errorf("build get auction state query: %w", err)
	}

	var row auctionStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return auction.State{}, false, nil
		}
		return auction.State{}, false, fmt.Errorf("get auction state: %w", err)
	}

	return auctionStateFromRow(row), true, nil
}

func (r *AuctionRepository) Update(ctx context.Context, next auction.State, expectedVersion int64) error {
	query, args, err := qb.Update("auction_state").
		Set("active_player_id", nullString(next.ActivePlayerID)).
		Set("current_bid", next.CurrentBid).
		Set("leading_bidder_id", nullString(next.LeadingBidderID)).
		Set("is_active", next.IsActive).
		Set("timer_duration_seconds", next.TimerDurationSeconds).
		Set("timer_started_at", next.TimerStartedAt).
		Set("updated_at", next.UpdatedAt).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("id", next.ID),
			qb.Eq("version", expectedVersion),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update auction state query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update auction state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update auction state rows affected: %w", err)
	}
	if affected == 0 {
		return auction.ErrVersionConflict
	}
	return nil
}
