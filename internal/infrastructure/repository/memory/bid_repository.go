package memory

import (
	"context"
	"sync"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/bid"
)

type BidRepository struct {
	mu    sync.RWMutex
	items []bid.Bid
}

func NewBidRepository() *BidRepository {
	return &BidRepository{}
}

func (r *BidRepository) Insert(_ context.Context, b bid.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, b)
	return nil
}

func (r *BidRepository) ListByPlayer(_ context.Context, playerID string) ([]bid.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bid.Bid, 0)
	for _, b := range r.items {
		if b.PlayerID == playerID {
			out = append(out, b)
		}
	}
	return out, nil
}
