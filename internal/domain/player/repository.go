package player

import "context"

type Repository interface {
	Insert(ctx context.Context, p Player) error
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)
	ListByStatus(ctx context.Context, status Status) ([]Player, error)
	UpdateStatus(ctx context.Context, playerID string, status Status) error
}
