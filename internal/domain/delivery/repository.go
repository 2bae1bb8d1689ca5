package delivery

import "context"

type Repository interface {
	Append(ctx context.Context, b Ball) error
	ListByInnings(ctx context.Context, inningsID string) ([]Ball, error)
	Last(ctx context.Context, inningsID string) (Ball, bool, error)
	Delete(ctx context.Context, ballID string) error
}
