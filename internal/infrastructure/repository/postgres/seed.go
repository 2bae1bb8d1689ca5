package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smarteck4/cricket-auction-pro/internal/infrastructure/repository/memory"
	qb "github.com/smarteck4/cricket-auction-pro/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo owners and player pool into an empty
// database. The auction_state singleton row comes from the migrations, so
// only the pool tables are touched here.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM owners`); err != nil {
		return fmt.Errorf("count owners for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, o := range memory.SeedOwners() {
		query, args, err := qb.InsertModel("owners", ownerInsertModel{
			ID:              o.ID,
			TeamName:        o.TeamName,
			UserID:          o.UserID,
			TotalPoints:     o.TotalPoints,
			RemainingPoints: o.RemainingPoints,
			CreatedAt:       o.CreatedAt,
		}, "ON CONFLICT (id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed owner %s query: %w", o.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed owner %s: %w", o.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("players", playerInsertModel{
			ID:        p.ID,
			Name:      p.Name,
			Category:  string(p.Category),
			Skill:     string(p.Skill),
			BasePrice: p.BasePrice,
			Status:    string(p.Status),
			CreatedAt: p.CreatedAt,
		}, "ON CONFLICT (id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
