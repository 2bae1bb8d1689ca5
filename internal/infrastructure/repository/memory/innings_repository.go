package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
)

type InningsRepository struct {
	mu     sync.RWMutex
	items  map[string]innings.Innings
	orders []string
}

func NewInningsRepository() *InningsRepository {
	return &InningsRepository{items: make(map[string]innings.Innings)}
}

func (r *InningsRepository) Insert(_ context.Context, in innings.Innings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[in.ID]; ok {
		return fmt.Errorf("innings %s already exists", in.ID)
	}
	r.items[in.ID] = in
	r.orders = append(r.orders, in.ID)
	return nil
}

func (r *InningsRepository) GetByID(_ context.Context, inningsID string) (innings.Innings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.items[inningsID]
	if !ok {
		return innings.Innings{}, false, nil
	}
	return in, true, nil
}

func (r *InningsRepository) ListByMatch(_ context.Context, matchID string) ([]innings.Innings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]innings.Innings, 0, 2)
	for _, id := range r.orders {
		if r.items[id].MatchID == matchID {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *InningsRepository) Update(_ context.Context, in innings.Innings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[in.ID]; !ok {
		return fmt.Errorf("innings %s not found", in.ID)
	}
	r.items[in.ID] = in
	return nil
}
