package innings

import "context"

type Repository interface {
	Insert(ctx context.Context, in Innings) error
	GetByID(ctx context.Context, inningsID string) (Innings, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Innings, error)
	Update(ctx context.Context, in Innings) error
}
