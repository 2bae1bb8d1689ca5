package auction

import "context"

type Repository interface {
	Get(ctx context.Context) (State, bool, error)
	// Update persists next only when the stored version still equals
	// expectedVersion, bumping the version on success. It returns
	// ErrVersionConflict otherwise.
	Update(ctx context.Context, next State, expectedVersion int64) error
}
