package bid

import "context"

type Repository interface {
	Insert(ctx context.Context, b Bid) error
	ListByPlayer(ctx context.Context, playerID string) ([]Bid, error)
}
