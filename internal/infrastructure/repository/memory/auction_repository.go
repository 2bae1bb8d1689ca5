package memory

import (
	"context"
	"sync"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
)

// AuctionRepository holds the singleton auction row. Update honors the
// same optimistic versioning the Postgres implementation enforces.
type AuctionRepository struct {
	mu    sync.RWMutex
	state auction.State
}

func NewAuctionRepository(initial auction.State) *AuctionRepository {
	if initial.ID == "" {
		initial.ID = "live"
	}
	return &AuctionRepository{state: initial}
}

func (r *AuctionRepository) Get(_ context.Context) (auction.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state, true, nil
}

func (r *AuctionRepository) Update(_ context.Context, next auction.State, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Version != expectedVersion {
		return auction.ErrVersionConflict
	}
	next.ID = r.state.ID
	next.Version = expectedVersion + 1
	r.state = next
	return nil
}
