package owner

import "context"

type Repository interface {
	Insert(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, ownerID string) (Owner, bool, error)
	List(ctx context.Context) ([]Owner, error)
	// DeductPoints subtracts amount from the owner's remaining budget.
	DeductPoints(ctx context.Context, ownerID string, amount int64) error
}
