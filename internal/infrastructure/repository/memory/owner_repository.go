package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
)

type OwnerRepository struct {
	mu     sync.RWMutex
	items  map[string]owner.Owner
	orders []string
}

func NewOwnerRepository(owners []owner.Owner) *OwnerRepository {
	items := make(map[string]owner.Owner, len(owners))
	orders := make([]string, 0, len(owners))
	for _, o := range owners {
		items[o.ID] = o
		orders = append(orders, o.ID)
	}
	return &OwnerRepository{
		items:  items,
		orders: orders,
	}
}

func (r *OwnerRepository) Insert(_ context.Context, o owner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[o.ID]; ok {
		return fmt.Errorf("owner %s already exists", o.ID)
	}
	r.items[o.ID] = o
	r.orders = append(r.orders, o.ID)
	return nil
}

func (r *OwnerRepository) GetByID(_ context.Context, ownerID string) (owner.Owner, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[ownerID]
	if !ok {
		return owner.Owner{}, false, nil
	}
	return o, true, nil
}

func (r *OwnerRepository) List(_ context.Context) ([]owner.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owner.Owner, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *OwnerRepository) DeductPoints(_ context.Context, ownerID string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.items[ownerID]
	if !ok {
		return fmt.Errorf("owner %s not found", ownerID)
	}
	if o.RemainingPoints < amount {
		return fmt.Errorf("owner %s has %d points, cannot deduct %d", ownerID, o.RemainingPoints, amount)
	}
	o.RemainingPoints -= amount
	r.items[ownerID] = o
	return nil
}
