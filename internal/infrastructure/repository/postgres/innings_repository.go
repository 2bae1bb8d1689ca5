package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
	qb "github.com/smarteck4/cricket-auction-pro/internal/platform/querybuilder"
)

type InningsRepository struct {
	db *sqlx.DB
}

func NewInningsRepository(db *sqlx.DB) *InningsRepository {
	return &InningsRepository{db: db}
}

func (r *InningsRepository) Insert(ctx context.Context, in innings.Innings) error {
	query, args, err := qb.InsertModel("innings", inningsTableModel{
		ID:            in.ID,
		MatchID:       in.MatchID,
		Number:        in.Number,
		BattingTeamID: in.BattingTeamID,
		BowlingTeamID: in.BowlingTeamID,
		TotalRuns:     in.TotalRuns,
		Wickets:       in.Wickets,
		Extras:        in.Extras,
		LegalBalls:    in.LegalBalls,
		Target:        in.Target,
		Status:        string(in.Status),
		CreatedAt:     in.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert innings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert innings: %w", err)
	}
	return nil
}

func (r *InningsRepository) GetByID(ctx context.Context, inningsID string) (innings.Innings, bool, error) {
	query, args, err := qb.Select("*").From("innings").
		Where(qb.Eq("id", inningsID)).
		ToSQL()
	if err != nil {
		return innings.Innings{}, false, fmt.Errorf("build get innings by id query: %w", err)
	}

	var row inningsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return innings.Innings{}, false, nil
		}
		return innings.Innings{}, false, fmt.Errorf("get innings by id: %w", err)
	}

	return inningsFromRow(row), true, nil
}

func (r *InningsRepository) ListByMatch(ctx context.Context, matchID string) ([]innings.Innings, error) {
	query, args, err := qb.Select("*").From("innings").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list innings by match query: %w", err)
	}

	var rows []inningsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list innings by match: %w", err)
	}

	out := make([]innings.Innings, 0, len(rows))
	for _, row := range rows {
		out = append(out, inningsFromRow(row))
	}
	return out, nil
}

func (r *InningsRepository) Update(ctx context.Context, in innings.Innings) error {
	query, args, err := qb.Update("innings").
		Set("total_runs", in.TotalRuns).
		Set("wickets", in.Wickets).
		Set("extras", in.Extras).
		Set("legal_balls", in.LegalBalls).
		Set("target", in.Target).
		Set("status", string(in.Status)).
		Where(qb.Eq("id", in.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update innings query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update innings: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update innings rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update innings: innings %s not found", in.ID)
	}
	return nil
}
