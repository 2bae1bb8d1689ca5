package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
	qb "github.com/smarteck4/cricket-auction-pro/internal/platform/querybuilder"
)

// DeliveryRepository is the append-only ball ledger. Rows are never
// updated in place; an undo deletes the latest row outright.
type DeliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) Append(ctx context.Context, b delivery.Ball) error {
	query, args, err := qb.InsertModel("deliveries", deliveryTableModel{
		ID:         b.ID,
		InningsID:  b.InningsID,
		Sequence:   b.Sequence,
		OverNumber: b.OverNumber,
		BallNumber: b.BallNumber,
		BatsmanID:  b.BatsmanID,
		BowlerID:   b.BowlerID,
		RunsScored: b.RunsScored,
		ExtraType:  nullString(string(b.ExtraType)),
		ExtraRuns:  b.ExtraRuns,
		IsWicket:   b.IsWicket,
		WicketType: nullString(string(b.WicketType)),
		FielderID:  nullString(b.FielderID),
		RecordedAt: b.RecordedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert delivery query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepository) ListByInnings(ctx context.Context, inningsID string) ([]delivery.Ball, error) {
	query, args, err := qb.Select("*").From("deliveries").
		Where(qb.Eq("innings_id", inningsID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list deliveries query: %w", err)
	}

	var rows []deliveryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	out := make([]delivery.Ball, 0, len(rows))
	for _, row := range rows {
		out = append(out, ballFromRow(row))
	}
	return out, nil
}

func (r *DeliveryRepository) Last(ctx context.Context, inningsID string) (delivery.Ball, bool, error) {
	query, args, err := qb.Select("*").From("deliveries").
		Where(qb.Eq("innings_id", inningsID)).
		OrderBy("sequence DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return delivery.Ball{}, false, fmt.Errorf("build get last delivery query: %w", err)
	}

	var row deliveryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return delivery.Ball{}, false, nil
		}
		return delivery.Ball{}, false, fmt.Errorf("get last delivery: %w", err)
	}

	return ballFromRow(row), true, nil
}

func (r *DeliveryRepository) Delete(ctx context.Context, ballID string) error {
	query, args, err := qb.DeleteFrom("deliveries").
		Where(qb.Eq("id", ballID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete delivery query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete delivery rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete delivery: delivery %s not found", ballID)
	}
	return nil
}
