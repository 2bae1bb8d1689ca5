package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	orders []string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	orders := make([]string, 0, len(players))
	for _, p := range players {
		items[p.ID] = p
		orders = append(orders, p.ID)
	}
	return &PlayerRepository{
		items:  items,
		orders: orders,
	}
}

func (r *PlayerRepository) Insert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; ok {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.items[p.ID] = p
	r.orders = append(r.orders, p.ID)
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return p, true, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *PlayerRepository) ListByStatus(_ context.Context, status player.Status) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		if r.items[id].Status == status {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *PlayerRepository) UpdateStatus(_ context.Context, playerID string, status player.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	p.Status = status
	r.items[playerID] = p
	return nil
}
