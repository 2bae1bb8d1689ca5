package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/roster"
)

// RosterRepository keeps ownership records. It holds a reference to the
// player repository so category tallies resolve the way the Postgres join
// does.
type RosterRepository struct {
	mu      sync.RWMutex
	items   []roster.Entry
	players *PlayerRepository
}

func NewRosterRepository(players *PlayerRepository) *RosterRepository {
	return &RosterRepository{players: players}
}

func (r *RosterRepository) Insert(_ context.Context, e roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.PlayerID == e.PlayerID {
			return fmt.Errorf("player %s already has an owner", e.PlayerID)
		}
	}
	r.items = append(r.items, e)
	return nil
}

func (r *RosterRepository) ListByOwner(_ context.Context, ownerID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0)
	for _, e := range r.items {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *RosterRepository) GetByPlayer(_ context.Context, playerID string) (roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.items {
		if e.PlayerID == playerID {
			return e, true, nil
		}
	}
	return roster.Entry{}, false, nil
}

func (r *RosterRepository) CountByCategory(ctx context.Context, ownerID string) (map[player.Category]int64, error) {
	entries, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[player.Category]int64)
	for _, e := range entries {
		p, ok, err := r.players.GetByID(ctx, e.PlayerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		counts[p.Category]++
	}
	return counts, nil
}
