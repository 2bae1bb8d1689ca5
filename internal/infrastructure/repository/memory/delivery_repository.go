package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
)

// DeliveryRepository is the append-only ball ledger, ordered by insertion.
type DeliveryRepository struct {
	mu    sync.RWMutex
	items []delivery.Ball
}

func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{}
}

func (r *DeliveryRepository) Append(_ context.Context, b delivery.Ball) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, b)
	return nil
}

func (r *DeliveryRepository) ListByInnings(_ context.Context, inningsID string) ([]delivery.Ball, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]delivery.Ball, 0)
	for _, b := range r.items {
		if b.InningsID == inningsID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *DeliveryRepository) Last(_ context.Context, inningsID string) (delivery.Ball, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].InningsID == inningsID {
			return r.items[i], true, nil
		}
	}
	return delivery.Ball{}, false, nil
}

func (r *DeliveryRepository) Delete(_ context.Context, ballID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.items {
		if b.ID == ballID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("ball %s not found", ballID)
}
