package roster

import (
	"context"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
)

type Repository interface {
	Insert(ctx context.Context, e Entry) error
	ListByOwner(ctx context.Context, ownerID string) ([]Entry, error)
	GetByPlayer(ctx context.Context, playerID string) (Entry, bool, error)
	// CountByCategory tallies an owner's players per category, feeding the
	// reservation check on every bid.
	CountByCategory(ctx context.Context, ownerID string) (map[player.Category]int64, error)
}
