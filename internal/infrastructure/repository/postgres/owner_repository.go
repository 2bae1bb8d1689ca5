package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	qb "github.com/smarteck4/cricket-auction-pro/internal/platform/querybuilder"
)

type OwnerRepository struct {
	db *sqlx.DB
}

func NewOwnerRepository(db *sqlx.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) Insert(ctx context.Context, o owner.Owner) error {
	query, args, err := qb.InsertModel("owners", ownerInsertModel{
		ID:              o.ID,
		TeamName:        o.TeamName,
		UserID:          o.UserID,
		TotalPoints:     o.TotalPoints,
		RemainingPoints: o.RemainingPoints,
		CreatedAt:       o.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert owner query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

func (r *OwnerRepository) GetByID(ctx context.Context, ownerID string) (owner.Owner, bool, error) {
	query, args, err := qb.Select("*").From("owners").
		Where(qb.Eq("id", ownerID)).
		ToSQL()
	if err != nil {
		return owner.Owner{}, false, fmt.Errorf("build get owner by id query: %w", err)
	}

	var row ownerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return owner.Owner{}, false, nil
		}
		return owner.Owner{}, false, fmt.Errorf("get owner by id: %w", err)
	}

	return ownerFromRow(row), true, nil
}

func (r *OwnerRepository) List(ctx context.Context) ([]owner.Owner, error) {
	query, args, err := qb.Select("*").From("owners").
		OrderBy("team_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list owners query: %w", err)
	}

	var rows []ownerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}

	out := make([]owner.Owner, 0, len(rows))
	for _, row := range rows {
		out = append(out, ownerFromRow(row))
	}
	return out, nil
}

// DeductPoints decrements the remaining budget atomically; the guard in the
// WHERE clause keeps the balance from going negative under races.
func (r *OwnerRepository) DeductPoints(ctx context.Context, ownerID string, amount int64) error {
	query, args, err := qb.Update("owners").
		SetExpr("remaining_points", "remaining_points - ?", amount).
		Where(
			qb.Eq("id", ownerID),
			qb.Expr("remaining_points >= ?", amount),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deduct points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deduct points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deduct points rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("deduct points: owner %s not found or insufficient points", ownerID)
	}
	return nil
}
