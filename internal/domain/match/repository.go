package match

import "context"

type Repository interface {
	Insert(ctx context.Context, m Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	Update(ctx context.Context, m Match) error
}
