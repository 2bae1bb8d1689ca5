package auction

import (
	"errors"
	"fmt"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
)

var (
	ErrBidTooLow          = errors.New("auction: bid below minimum increment")
	ErrInsufficientBudget = errors.New("auction: bid exceeds remaining budget")
	ErrReservationBreach  = errors.New("auction: bid would break category reservation")
)

// Rules carries the tunable bidding parameters. ReferencePriceByCategory is
// the per-category price used to reserve budget for squad minimums that the
// owner has not met yet.
type Rules struct {
	IncrementFloor           int64
	DefaultTimerSeconds      int64
	ReferencePriceByCategory map[player.Category]int64
	MinByCategory            map[player.Category]int64
}

// MinIncrement is the smallest step over the current bid: one tenth of the
// current bid, rounded down, but never less than the configured floor.
func (r Rules) MinIncrement(currentBid int64) int64 {
	step := currentBid / 10
	if step < r.IncrementFloor {
		return r.IncrementFloor
	}
	return step
}

// ValidateBid checks a proposed bid against the current price, the owner's
// remaining budget, and the reservation rule. ownedByCategory counts players
// the owner already holds per category. The bid's own player counts toward
// its category's minimum, so only the still-unmet remainder is reserved.
func (r Rules) ValidateBid(amount, currentBid, remaining int64, category player.Category, ownedByCategory map[player.Category]int64) error {
	min := currentBid + r.MinIncrement(currentBid)
	if amount < min {
		return fmt.Errorf("%w: minimum bid is %d", ErrBidTooLow, min)
	}
	if amount > remaining {
		return fmt.Errorf("%w: remaining budget is %d", ErrInsufficientBudget, remaining)
	}

	var reserve int64
	for cat, minCount := range r.MinByCategory {
		unmet := minCount - ownedByCategory[cat]
		if cat == category {
			unmet--
		}
		if unmet <= 0 {
			continue
		}
		reserve += unmet * r.ReferencePriceByCategory[cat]
	}
	if remaining-amount < reserve {
		return fmt.Errorf("%w: must keep %d in reserve", ErrReservationBreach, reserve)
	}
	return nil
}
